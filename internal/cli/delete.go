package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a consultation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(deps, remote)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Delete the record on the relay instead of the local database")

	return cmd
}
