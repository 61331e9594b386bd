package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/epfml/codepack/pkg/keyval"
)

// newGetCmd creates the get command for fetching a stored value.
func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Fetch a value from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			value, err := keyval.GetString(ctx, st, userFromContext(ctx), args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}

// newSetCmd creates the set command for storing a value.
func newSetCmd() *cobra.Command {
	var ttlDays int

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			var ttl time.Duration
			if ttlDays > 0 {
				ttl = time.Duration(ttlDays) * 24 * time.Hour
			}

			user := userFromContext(ctx)
			if err := keyval.Set(ctx, st, user, args[0], args[1], ttl); err != nil {
				return err
			}

			printSuccess("Set %s", StyleHighlight.Render(user+"/"+args[0]))
			if ttl > 0 {
				printDetail("Expires in %d day(s)", ttlDays)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ttlDays, "ttl-days", 0, "expire the key after this many days (0 = never)")

	return cmd
}

// newUnsetCmd creates the unset command for deleting a key.
// Deleting an absent key succeeds.
func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Delete a key from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			user := userFromContext(ctx)
			if err := keyval.Unset(ctx, st, user, args[0]); err != nil {
				return err
			}

			printSuccess("Unset %s", StyleHighlight.Render(user+"/"+args[0]))
			return nil
		},
	}
}
