package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcdickinson/notionvault/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server on stdio",
	Run:   runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	a, err := openApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	m, err := a.migrator(context.Background())
	if err != nil {
		log.Fatalf("failed to set up migrator: %v", err)
	}
	server := mcp.NewServer(m, a.ledger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	if err := waitForSignal(errCh); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func waitForSignal(errCh chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		log.Printf("received signal: %s", sig)
		return nil
	case err := <-errCh:
		return err
	}
}
