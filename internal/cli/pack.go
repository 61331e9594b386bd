package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epfml/codepack/pkg/bundle"
	"github.com/epfml/codepack/pkg/errors"
	"github.com/epfml/codepack/pkg/observability"
	"github.com/epfml/codepack/pkg/store"
)

// packagesScope is the store namespace pushed packages live under,
// relative to the user prefix.
const packagesScope = "packages"

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	output string // explicit archive path; defaults to <id>.tar.gz
	push   bool   // upload the archive to the remote store
}

// newPackCmd creates the pack command for building a directory package.
//
// Selection is driven by the .codepack.toml policy file in the directory root
// (or built-in defaults when none exists). The package identity embeds the
// user, the directory basename, today's date, and a content hash, so packing
// the same tree twice yields the same id.
func newPackCmd() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [dir]",
		Short: "Build a tar.gz package from a directory tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runPack(cmd, dir, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "archive output path (default <id>.tar.gz)")
	cmd.Flags().BoolVar(&opts.push, "push", false, "upload the package to the remote store")

	return cmd
}

func runPack(cmd *cobra.Command, dir string, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	user := userFromContext(ctx)

	policy, err := bundle.LoadPolicy(dir)
	if err != nil {
		return err
	}
	logger.Debugf("Policy: %d exclude rule(s), %d include rule(s), max file size %d",
		len(policy.Exclude), len(policy.Include), policy.MaxFileSize)

	prog := newProgress(logger)
	spin := newSpinnerWithContext(ctx, "Packaging "+dir)
	spin.Start()

	start := time.Now()
	pkg, err := bundle.BuildWithPolicy(dir, policy, bundle.BuildOptions{User: user})
	spin.Stop()
	if err != nil {
		observability.Bundle().OnBuildComplete(ctx, "", 0, time.Since(start), err)
		if spin.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	observability.Bundle().OnBuildComplete(ctx, pkg.ID, len(pkg.Contents), time.Since(start), nil)
	prog.done(fmt.Sprintf("Packaged %s", dir))

	out := opts.output
	if out == "" {
		out = pkg.ID + ".tar.gz"
	}
	if err := os.WriteFile(out, pkg.Contents, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write archive %s", out)
	}

	printSuccess("Built package %s", StyleHighlight.Render(pkg.ID))
	printFile(out)
	printDetail("%d bytes", len(pkg.Contents))

	if opts.push {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		scoped := store.Scoped(st, user+"/"+packagesScope)
		if err := scoped.Put(ctx, pkg.ID, pkg.Contents, 0); err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "push package %s", pkg.ID)
		}
		printSuccess("Pushed %s", StyleHighlight.Render(packagesScope+"/"+pkg.ID))
	}

	fmt.Println(pkg.ID)
	return nil
}
