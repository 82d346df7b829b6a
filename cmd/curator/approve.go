package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/feedback-curator/internal/application/handlers"
)

type approveFlags struct {
	text      string
	textFile  string
	notes     string
	approver  string
	deleteRaw bool
}

func newApproveCmd() *cobra.Command {
	var flags approveFlags

	cmd := &cobra.Command{
		Use:   "approve <raw-key>",
		Short: "Approve a raw entry into the curated namespace",
		Long:  "Copies a raw entry to the curated namespace with the approved text, reviewer and notes stamped on.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApprove(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.text, "text", "t", "", "Approved response text")
	cmd.Flags().StringVar(&flags.textFile, "text-file", "", "Read the approved response from a file")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "Review notes")
	cmd.Flags().StringVar(&flags.approver, "approver", "", "Reviewer identity recorded on the entry")
	cmd.Flags().BoolVar(&flags.deleteRaw, "delete-raw", false, "Retire the raw object after the curated write succeeds")

	return cmd
}

func runApprove(cmd *cobra.Command, rawKey string, flags approveFlags) error {
	text, err := resolveText(flags.text, flags.textFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if err := d.Config.ValidateForReview(); err != nil {
			return err
		}

		result, err := d.Approve.Handle(ctx, rawKey, handlers.ApproveOptions{
			ApprovedText: text,
			Notes:        flags.notes,
			Approver:     flags.approver,
			DeleteRaw:    flags.deleteRaw,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Approved into %s\n", result.CuratedKey)
		if result.RawRetired {
			fmt.Printf("Retired raw object %s\n", rawKey)
		}
		if result.Warning != "" {
			fmt.Printf("Warning: %s\n", result.Warning)
		}
		return nil
	})
}

// resolveText picks the approved text from the flag or the file. Both set is
// ambiguous and rejected.
func resolveText(text, textFile string) (string, error) {
	if text != "" && textFile != "" {
		return "", fmt.Errorf("only one of --text and --text-file may be set")
	}
	if textFile != "" {
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("reading text file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return text, nil
}
