package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/jcdickinson/notionvault/internal/config"
	"github.com/jcdickinson/notionvault/internal/db"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migrated pages and the last run",
	Run:   runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
}

type statusPage struct {
	PageID     string `json:"page_id"`
	Title      string `json:"title"`
	Path       string `json:"path"`
	MigratedAt string `json:"migrated_at"`
}

type statusOutput struct {
	Pages   []statusPage `json:"pages"`
	LastRun *db.Run      `json:"last_run,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) {
	ledger, err := db.New(config.DBPath())
	if err != nil {
		log.Fatalf("failed to open ledger: %v", err)
	}
	defer ledger.Close()

	pages, err := ledger.ListPages()
	if err != nil {
		log.Fatalf("status failed: %v", err)
	}
	run, err := ledger.LastRun()
	if err != nil {
		log.Fatalf("status failed: %v", err)
	}

	out := statusOutput{Pages: make([]statusPage, 0, len(pages)), LastRun: run}
	for _, p := range pages {
		out.Pages = append(out.Pages, statusPage{
			PageID:     p.PageID,
			Title:      p.Title,
			Path:       p.Path,
			MigratedAt: p.MigratedAt.Format("2006-01-02 15:04"),
		})
	}

	if statusJSON {
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	if run != nil {
		fmt.Printf("last run %s: %d / %d pages\n", run.FinishedAt.Local().Format("2006-01-02 15:04"), run.Succeeded, run.Total)
	}
	if len(out.Pages) == 0 {
		fmt.Println("no pages migrated")
		return
	}
	for _, p := range out.Pages {
		fmt.Printf("  %s  %s (%s)\n", p.MigratedAt, p.Path, p.PageID)
	}
}
