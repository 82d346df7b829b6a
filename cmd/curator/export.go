package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	filterFlags
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export curated entries to file",
		Long:  "Exports the filtered curated entries as CSV or training-format JSONL.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	flags.register(cmd, DefaultExportLimit)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "csv", "Output format (csv, jsonl)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	filter, err := flags.toFilter()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if err := d.Config.ValidateForExport(); err != nil {
			return err
		}

		var w io.Writer = os.Stdout
		var f *os.File
		if flags.output != "" {
			f, err = os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return fmt.Errorf("creating file: %w", err)
			}
			w = f
		}

		result, err := d.Export.Handle(ctx, filter, flags.format, w)
		if f != nil {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}
		if err != nil {
			return err
		}

		if result.Warning != "" {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", result.Warning)
		}
		if flags.output != "" {
			fmt.Printf("Exported %d of %d entries to %s\n", result.Written, result.Loaded, flags.output)
		}
		if len(result.SkippedObjects) > 0 {
			fmt.Fprintf(os.Stderr, "Skipped %d unreadable objects\n", len(result.SkippedObjects))
		}
		return nil
	})
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
