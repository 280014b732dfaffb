package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Print a page as Markdown without writing it",
	Example: `  notionvault render 1aeb266e0c708060a6fec6eb458e1379
  notionvault render https://www.notion.so/My-Note-1aeb266e0c708060a6fec6eb458e1379`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func runRender(cmd *cobra.Command, args []string) {
	id, err := pageID(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := openApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	ctx := context.Background()
	m, err := a.migrator(ctx)
	if err != nil {
		log.Fatalf("failed to set up renderer: %v", err)
	}

	_, content, err := m.ConvertByID(ctx, id)
	if err != nil {
		log.Fatalf("render failed: %v", err)
	}
	fmt.Print(content)
}
