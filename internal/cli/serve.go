package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/revsent/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cfg := openSession(cmd.ErrOrStderr(), overrideFlags{
			token: flagServeToken,
			addr:  flagServeAddr,
		})
		if sess == nil {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(sess, logger.Named("server"))
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving %d reviews on %s\n", sess.Store().Len(), cfg.Server.Addr)
		if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

// serve flags
var (
	flagServeAddr  string
	flagServeToken string
)

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config: :8080)")
	serveCmd.Flags().StringVar(&flagServeToken, "token", "", "Fallback API token for requests without one")
}
