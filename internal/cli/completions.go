package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	formulaic "github.com/formulaic-app/formulaic-go"
)

func (a *CLI) completionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completions",
		Short: "Run formulas",
	}

	cmd.AddCommand(a.completionCreateCommand())

	return cmd
}

func (a *CLI) completionCreateCommand() *cobra.Command {
	var (
		data      string
		models    []string
		variables []string
	)

	cmd := &cobra.Command{
		Use:           "create [formula-id]",
		Short:         "Create a completion",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readData(data, "", nil)
			if err != nil {
				return err
			}
			if body == nil {
				body = make(formulaic.Resource)
			}
			if len(models) > 0 {
				body["models"] = models
			}
			if len(variables) > 0 {
				vars := make([]formulaic.Resource, len(variables))
				for i, kv := range variables {
					name, value, ok := strings.Cut(kv, "=")
					if !ok {
						return fmt.Errorf("malformed variable: %s: must be name=value", kv)
					}
					vars[i] = formulaic.Resource{"name": name, "value": value}
				}
				body["variables"] = vars
			}

			completion, err := a.client.CreateCompletion(cmd.Context(), args[0], body)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), completion)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Completion request as a JSON object")
	cmd.Flags().StringArrayVar(&models, "model", nil, "Model to run; may be repeated")
	cmd.Flags().StringArrayVar(&variables, "variable", nil, "Variable as name=value; may be repeated")

	return cmd
}

func (a *CLI) chatCommand() *cobra.Command {
	var messages []string

	cmd := &cobra.Command{
		Use:           "chat [formula-id]",
		Short:         "Create a chat completion",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			conversation := make([]formulaic.Message, len(messages))
			for i, m := range messages {
				role, content, ok := strings.Cut(m, "=")
				if !ok {
					return fmt.Errorf("malformed message: %s: must be role=content", m)
				}
				conversation[i] = formulaic.NewMessage(role, content)
			}

			reply, err := a.client.CreateChatCompletion(cmd.Context(), args[0], conversation)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), reply)
		},
	}

	cmd.Flags().StringArrayVar(&messages, "message", nil, "Message as role=content; may be repeated")
	cmd.MarkFlagRequired("message")

	return cmd
}
