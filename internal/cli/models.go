package cli

import (
	"github.com/spf13/cobra"
)

func (a *CLI) modelsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Model discovery",
	}

	cmd.AddCommand(a.modelsListCommand())

	return cmd
}

func (a *CLI) modelsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List available models",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := a.client.GetModels(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), models)
		},
	}
}
