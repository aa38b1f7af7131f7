package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func (a *CLI) formulasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "formulas",
		Aliases: []string{"recipes"},
		Short:   "Formula management",
	}

	cmd.AddCommand(a.formulaShowCommand())
	cmd.AddCommand(a.formulaScriptsCommand())
	cmd.AddCommand(a.formulaCreateCommand())

	return cmd
}

func (a *CLI) formulaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "show [formula-id]",
		Short:         "Show a formula",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formula, err := a.client.GetFormula(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), formula)
		},
	}
}

func (a *CLI) formulaScriptsCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "scripts [formula-id]",
		Short:         "List the scripts of a formula",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			scripts, err := a.client.GetScripts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), scripts)
		},
	}
}

func (a *CLI) formulaCreateCommand() *cobra.Command {
	var data, dataFile string

	cmd := &cobra.Command{
		Use:           "create",
		Short:         "Create a formula",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readData(data, dataFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if body == nil {
				return errors.New("formula data is required: set --data or --data-file")
			}
			formula, err := a.client.CreateFormula(cmd.Context(), body)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), formula)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Formula as a JSON object")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "File containing the formula as a JSON object; - for stdin")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")

	return cmd
}
