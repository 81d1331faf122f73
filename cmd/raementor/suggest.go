package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raementor/raementor/internal/agent"
)

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <course description>",
		Short: "Draft a course objective for a description and print it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("course description is empty")
			}

			ragAgent, err := agent.NewFromConfig(a.cfg, a.logger)
			if err != nil {
				return err
			}

			output, err := ragAgent.Suggest(cmd.Context(), text)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
}
