package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelup/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calculator SSH server",
	Long: `Start an SSH server that allows users to connect and use the calculator.

Each SSH connection gets its own calculator session.
Saved calculations are stored per-server (all users share one history).

Host key handling:
  - If --host-key or ssh.host_key is set, uses that key file
  - Otherwise, auto-generates a key at ~/.levelup/host_key

Examples:
  levelup serve                           # Listen on :23235 with auto-generated key
  levelup serve --ssh :2222               # Listen on port 2222
  levelup serve --host-key ./my_host_key  # Use specific host key
  levelup serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", -1, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	e := loadEnv()

	cfg := e.cfg.SSH
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKey = flagHostKey
	}
	if flagIdleTimeout >= 0 {
		cfg.IdleTimeoutMinutes = flagIdleTimeout
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, e.deps(store))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting levelup SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
