package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/feedback-curator/internal/application/handlers"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

type generateFlags struct {
	prompt       string
	promptFile   string
	save         bool
	approvedText string
	approver     string
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a draft response",
		Long:  "Requests a draft from the configured model and optionally saves it as a curated entry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.prompt, "prompt", "p", "", "Prompt text")
	cmd.Flags().StringVar(&flags.promptFile, "prompt-file", "", "Read the prompt from a file")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Persist the draft as a curated entry")
	cmd.Flags().StringVar(&flags.approvedText, "approved-text", "", "Override the saved text (defaults to the draft)")
	cmd.Flags().StringVar(&flags.approver, "approver", "", "Reviewer identity recorded on the saved entry")

	return cmd
}

func runGenerate(cmd *cobra.Command, flags generateFlags) error {
	prompt, err := resolveText(flags.prompt, flags.promptFile)
	if err != nil {
		return err
	}
	if prompt == "" {
		return fmt.Errorf("a prompt is required (use --prompt or --prompt-file)")
	}

	ctx := cmd.Context()

	return withGenerateHandler(ctx, func(h *handlers.GenerateHandler) error {
		session := handlers.NewSession()

		draft, err := h.Handle(ctx, session, prompt)
		if err != nil {
			if draft != nil {
				displayAttempts(draft)
			}
			return err
		}

		fmt.Printf("Draft (%s, %d chars):\n\n%s\n", draft.Route, len(draft.Text), draft.Text)

		if !flags.save {
			return nil
		}

		key, err := h.SaveFresh(ctx, session, flags.approvedText, flags.approver)
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved curated entry %s\n", key)
		return nil
	})
}

func displayAttempts(draft *ports.Draft) {
	for _, a := range draft.Attempts {
		if a.Err != "" {
			fmt.Printf("attempt via %s failed: %s\n", a.Route, a.Err)
		}
	}
}
