package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored consultation records",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(deps, remote)
			if err != nil {
				return err
			}
			defer closeStore()

			sessions, err := store.GetAll(cmd.Context())
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No recordings found")
				return nil
			}

			for _, s := range sessions {
				patient := s.PatientName
				if patient == "" {
					patient = "(unnamed)"
				}
				line := fmt.Sprintf("%s  %s  %s  %ds  %s",
					s.ID, s.Date.Format("2006-01-02 15:04"), patient, s.Duration, s.Status)
				if s.Fallback {
					line += "  [fallback]"
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "List records from the relay instead of the local database")

	return cmd
}
