package commands

import (
	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/spf13/cobra"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "btcsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}

			g, err := a.prefs.GlobalAssumptions()
			if err != nil {
				return err
			}
			parser := config.NewInputParserWithDefaults(g)
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), path, force); err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "Wrote %s\nRun it with: btcsim run -c %s\n", path, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
