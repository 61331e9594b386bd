package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/epfml/codepack/pkg/buildinfo"
	"github.com/epfml/codepack/pkg/bundle"
)

// Execute runs the codepack CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (get, set, unset,
// pack, unpack, serve), configures logging based on the --verbose flag, and
// executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		user    string
	)

	root := &cobra.Command{
		Use:          "codepack",
		Short:        "Codepack packages directory trees and shares small values",
		Long:         `Codepack bundles a directory tree into a reproducible tar.gz package with a content-derived identity, and doubles as a thin key-value client for a remote object store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withUser(ctx, resolveUser(user)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&user, "user", "u", "", "namespace user (defaults to $CODEPACK_USER or $USER)")

	root.AddCommand(newGetCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newUnsetCmd())
	root.AddCommand(newPackCmd())
	root.AddCommand(newUnpackCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// resolveUser picks the namespace user: the --user flag wins, otherwise the
// environment decides.
func resolveUser(flag string) string {
	if flag != "" {
		return flag
	}
	return bundle.Username()
}

// userKey is the context key for the resolved namespace user.
const userKey ctxKey = 1

func withUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// userFromContext retrieves the namespace user from ctx.
func userFromContext(ctx context.Context) string {
	if u, ok := ctx.Value(userKey).(string); ok && u != "" {
		return u
	}
	return bundle.Username()
}
