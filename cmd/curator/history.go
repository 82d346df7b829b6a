package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		key   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the local action history",
		Long:  "Lists recorded pipeline actions, newest first, or every action against one object key.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, limit, key)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultHistoryLimit, "Maximum number of actions to display")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Show all actions against this object key")

	return cmd
}

func runHistory(cmd *cobra.Command, limit int, key string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		var actions []entities.AuditEntry
		var err error

		if key != "" {
			actions, err = d.Audit.FindByKey(ctx, key)
		} else {
			actions, err = d.Audit.Recent(ctx, limit)
		}
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}

		if len(actions) == 0 {
			fmt.Println("No actions recorded.")
			return nil
		}

		for _, a := range actions {
			displayAction(a)
		}
		return nil
	})
}

func displayAction(a entities.AuditEntry) {
	fmt.Printf("%s  %-15s %s\n", a.CreatedAt.Format(time.RFC3339), a.Action, a.ObjectKey)
	if len(a.Details) > 0 {
		if data, err := json.Marshal(a.Details); err == nil {
			fmt.Printf("  %s\n", data)
		}
	}
}
