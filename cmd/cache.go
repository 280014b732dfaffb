package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jcdickinson/notionvault/internal/cache"
	"github.com/jcdickinson/notionvault/internal/config"
	"github.com/spf13/cobra"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Delete cached block trees so every page is fetched again",
	Run:   runClearCache,
}

func runClearCache(cmd *cobra.Command, args []string) {
	if err := cache.New(config.TreeCacheDir()).Clear(); err != nil {
		slog.Error("failed to clear cache", "error", err)
		os.Exit(1)
	}
	fmt.Println("tree cache cleared")
}
