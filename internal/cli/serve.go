package cli

import (
	"github.com/spf13/cobra"

	"github.com/epfml/codepack/internal/server"
)

// newServeCmd creates the serve command for running the object-store HTTP API.
// The server exposes the configured store backend over /v1/objects, so other
// machines can use it through CODEPACK_STORE=http.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the object-store HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			printInfo("Serving objects on %s", StyleHighlight.Render(addr))
			return server.New(st, logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
