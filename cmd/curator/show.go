package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

func newShowCmd() *cobra.Command {
	var (
		flags filterFlags
		index int
	)

	cmd := &cobra.Command{
		Use:   "show [key]",
		Short: "Show one entry in full",
		Long:  "Shows a single raw entry, addressed by its object key or by its position in the filtered listing.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runShow(cmd, key, index, flags)
		},
	}

	flags.register(cmd, DefaultListLimit)
	cmd.Flags().IntVarP(&index, "index", "i", -1, "Position in the filtered listing, 0-based")

	return cmd
}

func runShow(cmd *cobra.Command, key string, index int, flags filterFlags) error {
	if key == "" && index < 0 {
		return fmt.Errorf("either a key or --index is required")
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if err := d.Config.ValidateForReview(); err != nil {
			return err
		}

		var entry entities.Entry
		var err error

		if key != "" {
			entry, err = d.Raw.Get(ctx, key)
			if err != nil {
				return err
			}
		} else {
			filter, ferr := flags.toFilter()
			if ferr != nil {
				return ferr
			}
			result, lerr := d.Raw.List(ctx, filter)
			if lerr != nil {
				return fmt.Errorf("listing entries: %w", lerr)
			}
			if index >= len(result.Entries) {
				return fmt.Errorf("index %d out of range, listing has %d entries", index, len(result.Entries))
			}
			entry = result.Entries[index]
		}

		displayEntry(entry)
		return nil
	})
}

func displayEntry(entry entities.Entry) {
	fmt.Printf("Key: %s\n", entry.Origin.Key)
	if entry.Timestamp != "" {
		fmt.Printf("Timestamp: %s\n", entry.Timestamp)
	}
	if entry.UsedModel != "" {
		fmt.Printf("Model: %s\n", entry.UsedModel)
	}

	fmt.Printf("\nPrompt:\n%s\n", entry.Prompt)
	fmt.Printf("\nAI response:\n%s\n", entry.AIResponse)

	if entry.ApprovedResponse != "" {
		fmt.Printf("\nApproved response:\n%s\n", entry.ApprovedResponse)
		fmt.Printf("\nApproved by %s at %s\n", entry.ApprovedBy, entry.ApprovedAt)
	}
	if entry.ReviewNotes != "" {
		fmt.Printf("Notes: %s\n", entry.ReviewNotes)
	}
	if entry.SourceRawKey != "" {
		fmt.Printf("Source: %s/%s\n", entry.SourceRawBucket, entry.SourceRawKey)
	}
}
