package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/jcdickinson/notionvault/internal/markdown"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <page>",
	Short: "Show how a page changed since it was last migrated",
	Args:  cobra.ExactArgs(1),
	Run:   runDiff,
}

func runDiff(cmd *cobra.Command, args []string) {
	id, err := pageID(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}

	old, entry, err := lastSnapshot(id)
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
	_, current, err := m.ConvertByID(ctx, id)
	if err != nil {
		log.Fatalf("render failed: %v", err)
	}

	d := markdown.Diff(old, current)
	if d == "" {
		fmt.Printf("%s is unchanged\n", entry.Path)
		return
	}
	fmt.Printf("--- %s (migrated %s)\n+++ current\n", entry.Path, entry.MigratedAt.Format("2006-01-02 15:04"))
	fmt.Print(d)
}
