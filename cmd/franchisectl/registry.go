// cmd/franchisectl/registry.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"franchise-ops/pkg/registry"
)

func newRegistryCmd(_ *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "List, validate and update the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "registry", "configs/activity-registry.json", "activity registry file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered activities",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT")
				for _, a := range reg.Activities {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.Category, a.ImplementationStatus, a.Timeout)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check the registry for missing fields and duplicates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				if err := reg.Validate(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d activities OK\n", len(reg.Activities))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-status <activity-id> <status>",
			Short: "Set an activity's implementation status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				reg, err := registry.LoadRegistry(path)
				if err != nil {
					return err
				}
				if err := reg.SetStatus(args[0], args[1]); err != nil {
					return err
				}
				if err := reg.Save(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
				return nil
			},
		},
	)
	return cmd
}
