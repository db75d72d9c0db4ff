package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/medscribe/medscribe/internal/capture"
	"github.com/medscribe/medscribe/internal/session"
	"github.com/medscribe/medscribe/internal/stores/consent"
	"github.com/medscribe/medscribe/pkg/consult"
)

// Stale consent entries are purged on this cadence.
const (
	consentSweepSchedule = "@every 10m"
	consentMaxAge        = 30 * time.Minute
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var patient string
	var doctor string
	var consentGiven bool
	var summaryConsent bool
	var remote bool

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a consultation and process it into notes",
		Long: "Record a consultation from the default microphone. After the recording is\n" +
			"stopped the audio is transcribed and turned into clinical notes; the record\n" +
			"is then stored locally, or on the relay with --remote.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			// Consent step. Recording cannot start without it.
			if !consentGiven {
				consentGiven = promptYesNo(reader, "Has the patient consented to this consultation being recorded?")
			}
			if !consentGiven {
				return fmt.Errorf("recording consent is required")
			}
			if !cmd.Flags().Changed("summary") {
				summaryConsent = promptYesNo(reader, "Has the patient consented to receiving a written summary?")
			}

			store, closeStore, err := openStore(deps, remote)
			if err != nil {
				return err
			}
			defer closeStore()

			consents := consent.NewStore()
			sweeper, err := consent.StartSweeper(consents, consentSweepSchedule, consentMaxAge)
			if err != nil {
				return err
			}
			defer sweeper.Stop()

			sessionID := uuid.NewString()
			if err := consents.Put(&consult.ConsentRecord{
				SessionID:   sessionID,
				PatientName: patient,
				DoctorName:  doctor,
				Flags: consult.ConsentFlags{
					RecordingConsent: consentGiven,
					SummaryConsent:   summaryConsent,
				},
			}); err != nil {
				return err
			}

			machine := session.NewMachine(cmd.Context(), session.Config{
				SessionID: sessionID,
				Device:    capture.NewFFmpegDevice(),
				Processor: apiClient(deps),
				Consents:  consents,
				Store:     store,
			})
			defer machine.Close()

			if !machine.RemoteHealthy() {
				fmt.Println("Warning: processing service is unreachable; the record will contain demo fallback content.")
			}

			return runSession(cmd, reader, machine)
		},
	}

	cmd.Flags().StringVarP(&patient, "patient", "p", "", "Patient name")
	cmd.Flags().StringVarP(&doctor, "doctor", "d", "", "Doctor name")
	cmd.Flags().BoolVar(&consentGiven, "consent", false, "Patient has consented to recording (skips the prompt)")
	cmd.Flags().BoolVar(&summaryConsent, "summary", false, "Patient has consented to a written summary (skips the prompt)")
	cmd.Flags().BoolVar(&remote, "remote", false, "Store the record on the relay instead of the local database")

	return cmd
}

// runSession drives the machine through one recording and processing pass,
// offering a retry when the pipeline fails.
func runSession(cmd *cobra.Command, reader *bufio.Reader, machine *session.Machine) error {
	ctx := cmd.Context()

	if err := machine.Start(ctx); err != nil {
		msg, _ := machine.Err()
		if msg != "" {
			fmt.Println(msg)
		}
		return err
	}

	fmt.Println("Recording. Press Enter to stop.")
	waitForStop(reader)

	if err := machine.Stop(); err != nil {
		msg, _ := machine.Err()
		if msg != "" {
			fmt.Println(msg)
		}
		return err
	}
	fmt.Printf("Recorded %ds of audio. Processing...\n", machine.Elapsed())

	for {
		err := machine.Process(ctx)
		if err == nil {
			break
		}

		msg, _ := machine.Err()
		if msg != "" {
			fmt.Println(msg)
		}
		if machine.State() != session.StateError || !machine.HasAudio() {
			return err
		}
		if !promptYesNo(reader, "Retry processing?") {
			return err
		}
		if err := machine.Retry(); err != nil {
			return err
		}
	}

	record := machine.Record()
	if record == nil {
		return fmt.Errorf("session did not produce a record")
	}

	fmt.Println()
	printSession(record)
	return nil
}

// waitForStop blocks until the operator presses Enter or interrupts.
func waitForStop(reader *bufio.Reader) {
	enter := make(chan struct{})
	go func() {
		reader.ReadString('\n')
		close(enter)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case <-enter:
	case <-interrupt:
	}
}

func promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
