package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bridge/internal/app"
)

func (c *CLI) newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name[@version]|all>",
		Aliases: []string{"rm"},
		Short:   "Remove packages from the shared registry",
		Long: "Remove a package version unless other packages or projects still use it.\n" +
			"The nearest project never blocks its own removal.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auto, _ := cmd.Flags().GetBool("auto")
			force, _ := cmd.Flags().GetBool("force")
			save, _ := cmd.Flags().GetBool("save")
			saveDev, _ := cmd.Flags().GetBool("save-dev")

			_, err := c.app.Remove(cmd.Context(), args[0], app.RemoveOptions{
				Auto:    auto,
				Force:   force,
				Save:    save,
				SaveDev: saveDev,
			})
			return err
		},
	}

	cmd.Flags().BoolP("auto", "a", false, "Also remove dependencies nothing else uses")
	cmd.Flags().BoolP("force", "f", false, "Remove even when the package is in use")
	cmd.Flags().BoolP("save", "S", false, "Drop the package from the nearest package.json")
	cmd.Flags().BoolP("save-dev", "D", false, "Drop the package from the nearest package.json")
	cmd.MarkFlagsMutuallyExclusive("save", "save-dev")

	return cmd
}
