package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/feedback-curator/internal/application/handlers"
	"github.com/ersonp/feedback-curator/internal/domain/services"
	"github.com/ersonp/feedback-curator/internal/infrastructure/config"
)

// validateNamespaceConfig checks that the bucket backing the requested
// namespace is configured, so a missing bucket surfaces as a config
// error instead of an empty listing.
func validateNamespaceConfig(cfg *config.Config, namespace string) error {
	if namespace == "curated" {
		return cfg.ValidateForExport()
	}
	return cfg.ValidateForReview()
}

type filterFlags struct {
	from    string
	to      string
	keyword string
	limit   int
}

func (f *filterFlags) register(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.keyword, "keyword", "k", "", "Case-insensitive keyword filter")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", defaultLimit, "Maximum number of entries to load")
}

func (f *filterFlags) toFilter() (handlers.Filter, error) {
	for _, date := range []string{f.from, f.to} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(services.DateLayout, date); err != nil {
			return handlers.Filter{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
	}
	return handlers.Filter{
		Start:   f.from,
		End:     f.to,
		Keyword: f.keyword,
		Limit:   f.limit,
	}, nil
}

func newListCmd() *cobra.Command {
	var (
		flags     filterFlags
		namespace string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Long:  "Lists entries in the raw or curated namespace with optional filtering.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, namespace)
		},
	}

	flags.register(cmd, DefaultListLimit)
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "raw", "Namespace to list (raw, curated)")

	return cmd
}

func runList(cmd *cobra.Command, flags filterFlags, namespace string) error {
	if !contains(validNamespaces, namespace) {
		return fmt.Errorf("invalid namespace %q, valid namespaces: %v", namespace, validNamespaces)
	}

	filter, err := flags.toFilter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if err := validateNamespaceConfig(d.Config, namespace); err != nil {
			return err
		}

		review := d.Raw
		if namespace == "curated" {
			review = d.Curated
		}

		result, err := review.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}

		displayListing(result, namespace)
		return nil
	})
}

func displayListing(result *handlers.ReviewResult, namespace string) {
	if result.Warning != "" {
		fmt.Printf("Warning: %s\n\n", result.Warning)
	}

	if len(result.Entries) == 0 {
		fmt.Printf("No %s entries found.\n", namespace)
		return
	}

	fmt.Printf("Showing %d %s entries:\n\n", len(result.Entries), namespace)
	for i, entry := range result.Entries {
		fmt.Printf("%3d. %s\n", i, entry.Label())
		fmt.Printf("     %s\n", entry.Origin.Key)
	}

	if len(result.Skipped) > 0 {
		fmt.Printf("\nSkipped %d unreadable objects:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Printf("  %s (%s)\n", s.Key, s.Reason)
		}
	}
}
