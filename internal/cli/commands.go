package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-apprun/internal/config"
)

// Output formats of the show command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func newSourcesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the settings sources in the order they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, report, err := opts.load(cmd)
			if err != nil {
				return err
			}

			writeReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func writeReport(w io.Writer, report config.Report) {
	for i, applied := range report {
		status := "used"
		if !applied.Found {
			status = "skipped"
		}

		src := applied.Source
		switch src.Kind {
		case config.KindEnvironmentPrefix:
			fmt.Fprintf(w, "%2d  %-7s  env   %q (%d keys)\n", i+1, status, src.Location, applied.Keys)
		default:
			required := ""
			if src.Required {
				required = " (required)"
			}
			fmt.Fprintf(w, "%2d  %-7s  file  %s%s\n", i+1, status, src.Location, required)
		}
	}
}

func newShowCommand(opts *options) *cobra.Command {
	var format, key string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unsupported format %q, expected %s or %s", format, formatJSON, formatYAML)
			}

			store, _, err := opts.load(cmd)
			if err != nil {
				return err
			}

			var value any = store.All()
			if key != "" {
				if !store.Exists(key) {
					return fmt.Errorf("key %q not found", key)
				}
				value = store.Get(key)
			}

			return encode(cmd.OutOrStdout(), format, value)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json or yaml")
	cmd.Flags().StringVarP(&key, "key", "k", "", "print a single key (nested keys use \":\", e.g. Logging:Level)")

	return cmd
}

func encode(w io.Writer, format string, value any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("error encoding json: %w", err)
	}

	return nil
}
