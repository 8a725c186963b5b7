package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bridge/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install [name[@range]...]",
		Aliases: []string{"i"},
		Short:   "Install packages into the shared registry",
		Long: "Install packages into the shared registry and link them into the nearest project.\n" +
			"Without arguments every dependency of the nearest package.json is installed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			save, _ := cmd.Flags().GetBool("save")
			saveDev, _ := cmd.Flags().GetBool("save-dev")

			return c.app.Install(cmd.Context(), args, app.InstallOptions{
				Force:   force,
				Save:    save,
				SaveDev: saveDev,
			})
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Fetch and copy again even when the version is registered")
	cmd.Flags().BoolP("save", "S", false, "Record the packages under dependencies")
	cmd.Flags().BoolP("save-dev", "D", false, "Record the packages under devDependencies")
	cmd.MarkFlagsMutuallyExclusive("save", "save-dev")

	return cmd
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "update [name...]",
		Aliases: []string{"u"},
		Short:   "Reinstall dependencies of the nearest project",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Update(cmd.Context(), args)
		},
	}
}

func (c *CLI) newCheckUpdatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-updates",
		Short: "Compare installed packages with the newest published versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			install, _ := cmd.Flags().GetBool("install")
			_, err := c.app.CheckUpdates(cmd.Context(), app.CheckOptions{Install: install})
			return err
		},
	}

	cmd.Flags().BoolP("install", "i", false, "Install the newer versions")

	return cmd
}
