package cli

import (
	stderrors "errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/epfml/codepack/pkg/bundle"
	"github.com/epfml/codepack/pkg/errors"
	"github.com/epfml/codepack/pkg/store"
)

// unpackOpts holds the command-line flags for the unpack command.
type unpackOpts struct {
	pull bool // treat the argument as a package id and fetch it from the store
}

// newUnpackCmd creates the unpack command for extracting a package.
//
// By default the argument is a local archive file. With --pull the argument is
// a package id and the archive is fetched from the remote store instead.
func newUnpackCmd() *cobra.Command {
	var opts unpackOpts

	cmd := &cobra.Command{
		Use:   "unpack <archive|package-id> [dest]",
		Short: "Extract a package into a directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}
			return runUnpack(cmd, args[0], dest, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.pull, "pull", false, "fetch the package from the remote store by id")

	return cmd
}

func runUnpack(cmd *cobra.Command, source, dest string, opts *unpackOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var (
		data []byte
		err  error
	)
	if opts.pull {
		st, openErr := openStore(ctx)
		if openErr != nil {
			return openErr
		}
		defer st.Close()

		user := userFromContext(ctx)
		scoped := store.Scoped(st, user+"/"+packagesScope)
		data, err = scoped.Get(ctx, source)
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.New(errors.ErrCodeNotFound, "package %s not found", source)
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "pull package %s", source)
		}
		logger.Debugf("Pulled %s: %d bytes", source, len(data))
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "read archive %s", source)
		}
	}

	prog := newProgress(logger)
	if err := bundle.Unpack(data, dest); err != nil {
		return err
	}
	prog.done("Extracted " + source)

	printSuccess("Extracted %s", StyleHighlight.Render(source))
	printFile(dest)
	return nil
}
