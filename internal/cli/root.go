// Package cli implements the medscribe command line: recording a
// consultation end to end, browsing stored records, and running the relay
// server.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medscribe/medscribe/internal/stores/recording"
	"github.com/medscribe/medscribe/pkg/sdk"
	"github.com/medscribe/medscribe/pkg/utils"
)

type Dependencies struct {
	Config *utils.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "medscribe",
		Short: "Record doctor-patient consultations, transcribe, and generate notes",
		Long: "A recording assistant for medical consultations. Audio is captured from the\n" +
			"microphone, transcribed by a local Whisper service, and turned into clinical\n" +
			"notes and a patient summary by a local LLM. Nothing leaves the machine.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewShowCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))
	rootCmd.AddCommand(NewServeCmd(deps))

	return rootCmd
}

// apiClient builds the relay client from config.
func apiClient(deps *Dependencies) *sdk.Client {
	baseURL := deps.Config.GetWithDefault("API_BASE_URL", "http://localhost:5000")
	return sdk.NewClient(baseURL)
}

// openStore picks the session store: the relay's recordings endpoints when
// remote is set, a local database otherwise. The cleanup func closes any
// database handle.
func openStore(deps *Dependencies, remote bool) (recording.Store, func(), error) {
	if remote {
		return sdk.NewRemoteStore(apiClient(deps)), func() {}, nil
	}

	dsn := deps.Config.GetWithDefault("DATABASE_URL", "medscribe.db")
	store, err := recording.NewDBStore(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening recording store: %w", err)
	}
	return store, func() { store.Close() }, nil
}
