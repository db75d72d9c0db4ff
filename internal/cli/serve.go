package cli

import (
	"github.com/spf13/cobra"

	"github.com/medscribe/medscribe/internal/api"
)

func NewServeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the relay API server",
		Long: "Run the HTTP relay that fronts the local Whisper and LLM services and\n" +
			"stores completed consultation records.",
		RunE: func(cmd *cobra.Command, args []string) error {
			api.Start(deps.Config)
			return nil
		},
	}
}
