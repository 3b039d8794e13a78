package main

import (
	"encoding/json"
	"fmt"
	"time"

	"patient-history/internal/client"

	"github.com/spf13/cobra"
)

func clientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Query a running patient-history service",
	}
	cmd.PersistentFlags().String("url", "http://localhost:8080", "Base URL of the service")
	cmd.PersistentFlags().Duration("timeout", 10*time.Second, "HTTP timeout")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a history by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			h, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, h)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List histories (all, or for one patient with --patient)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("patient") {
				patientID, _ := cmd.Flags().GetInt("patient")
				items, err := c.ListByPatient(cmd.Context(), patientID)
				if err != nil {
					return err
				}
				return printJSON(cmd, items)
			}

			items, err := c.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, items)
		},
	}
	listCmd.Flags().Int("patient", 0, "Patient id (patId)")

	cmd.AddCommand(getCmd, listCmd)
	return cmd
}

func newClient(cmd *cobra.Command) (*client.Client, error) {
	baseURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return client.New(baseURL, timeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
