package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/hrdash/internal/server"
)

var (
	srvAddr string
	srvData string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, path, err := newRenderer(srvData)
		if err != nil {
			return err
		}
		addr := cfg.ListenAddr
		if srvAddr != "" {
			addr = srvAddr
		}
		// Warm the cache; a missing file is reported but the error page is still served.
		if _, err := r.Loader().Load(path); err != nil {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("✓ Serving %s on http://%s\n", path, displayAddr(addr))
		return server.New(r, path, log).ListenAndServe(ctx, addr)
	},
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", "", "listen address (overrides listen_addr)")
	serveCmd.Flags().StringVar(&srvData, "data", "", "dataset path (overrides data_path)")
}
