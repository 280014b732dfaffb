package cmd

import (
	"fmt"
	"log"

	"github.com/jcdickinson/notionvault/internal/cas"
	"github.com/jcdickinson/notionvault/internal/config"
	"github.com/jcdickinson/notionvault/internal/db"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <page>",
	Short: "Print the note last written for a page",
	Long:  `Read the snapshot stored when the page was last migrated. Does not contact Notion.`,
	Example: `  notionvault get 1aeb266e0c708060a6fec6eb458e1379`,
	Args:    cobra.ExactArgs(1),
	Run:     runGet,
}

func runGet(cmd *cobra.Command, args []string) {
	id, err := pageID(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}

	content, _, err := lastSnapshot(id)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Print(content)
}

// lastSnapshot returns the stored note and ledger entry for a page.
func lastSnapshot(id string) (string, *db.Page, error) {
	ledger, err := db.New(config.DBPath())
	if err != nil {
		return "", nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	entry, err := ledger.GetPage(id)
	if err != nil {
		return "", nil, err
	}
	if entry == nil {
		return "", nil, fmt.Errorf("page %s has not been migrated", id)
	}

	content, err := cas.New(config.CASDir()).Read(entry.ContentHash)
	if err != nil {
		return "", nil, err
	}
	return content, entry, nil
}
