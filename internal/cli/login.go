package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *CLI) loginCommand(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Save an API key for the Formulaic host",
		// No client is needed, so override the root pre-run.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.APIKey == "" {
				return errors.New("an API key is required: set --api-key or FORMULAIC_API_KEY")
			}
			if err := a.creds.Save(cfg.BaseURL, cfg.APIKey); err != nil {
				return fmt.Errorf("saving credentials: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for %s in %s\n", cfg.BaseURL, a.creds)
			return nil
		},
	}
}
