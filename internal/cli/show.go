package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medscribe/medscribe/pkg/consult"
)

func NewShowCmd(deps *Dependencies) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one consultation record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(deps, remote)
			if err != nil {
				return err
			}
			defer closeStore()

			session, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printSession(session)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Fetch the record from the relay instead of the local database")

	return cmd
}

// printSession renders one record for the terminal.
func printSession(s *consult.Session) {
	fmt.Printf("Consultation %s\n", s.ID)
	if s.PatientName != "" {
		fmt.Printf("  Patient:  %s\n", s.PatientName)
	}
	if s.DoctorName != "" {
		fmt.Printf("  Doctor:   %s\n", s.DoctorName)
	}
	fmt.Printf("  Date:     %s\n", s.Date.Format("2006-01-02 15:04"))
	fmt.Printf("  Duration: %ds\n", s.Duration)
	fmt.Printf("  Status:   %s\n", s.Status)
	if s.Fallback {
		fmt.Println("  Note:     this record contains demo fallback content, not real output")
	}

	fmt.Println("\nTranscription:")
	fmt.Println(indent(s.Transcription))

	if notes := s.ClinicalNotes; notes != nil {
		fmt.Println("\nClinical notes:")
		fmt.Printf("  Subjective: %s\n", notes.Subjective)
		fmt.Printf("  Objective:  %s\n", notes.Objective)
		fmt.Printf("  Assessment: %s\n", notes.Assessment)
		fmt.Printf("  Plan:       %s\n", notes.Plan)
		if len(notes.Medications) > 0 {
			fmt.Printf("  Medications: %s\n", strings.Join(notes.Medications, ", "))
		}
		fmt.Printf("  Follow-up:  %s\n", notes.FollowUp)
	}

	if summary := s.PatientSummary; summary != nil {
		fmt.Println("\nPatient summary:")
		fmt.Println(indent(summary.Summary))
		for _, point := range summary.KeyPoints {
			fmt.Printf("  - %s\n", point)
		}
		if len(summary.NextSteps) > 0 {
			fmt.Println("  Next steps:")
			for _, step := range summary.NextSteps {
				fmt.Printf("  - %s\n", step)
			}
		}
	}
}

func indent(s string) string {
	if s == "" {
		return "  (empty)"
	}
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
