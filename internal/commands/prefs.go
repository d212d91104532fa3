package commands

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/spf13/cobra"
)

func newPrefsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or create the preferences file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the preferences file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printf(cmd.OutOrStdout(), "%s\n", config.PreferencesPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective preferences as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if !config.PreferencesExist() {
					printf(cmd.OutOrStdout(), "# %s does not exist, showing defaults\n", config.PreferencesPath())
				}
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(a.prefs)
			},
		},
		newPrefsInitCommand(),
	)
	return cmd
}

func newPrefsInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default preferences file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if config.PreferencesExist() && !force {
				return fmt.Errorf("%s already exists (use --force to replace it): %w", config.PreferencesPath(), os.ErrExist)
			}
			if err := config.SavePreferences(config.DefaultPreferences()); err != nil {
				return fmt.Errorf("saving preferences: %w", err)
			}
			printf(cmd.OutOrStdout(), "Saved to %s\n", config.PreferencesPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing preferences")
	return cmd
}
