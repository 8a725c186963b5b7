package commands

import "github.com/spf13/cobra"

func (c *CLI) newLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "link",
		Aliases: []string{"ln"},
		Short:   "Link the nearest project's dependencies from the registry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Link(cmd.Context())
		},
	}
}

func (c *CLI) newUnlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unlink",
		Aliases: []string{"rln"},
		Short:   "Remove the nearest project's links into the registry",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Unlink(cmd.Context())
		},
	}
}

func (c *CLI) newLinkBinCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "link-bin <name[@range]>",
		Aliases: []string{"lb"},
		Short:   "Expose a package's executables in the global bin directory",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.LinkBin(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newUnlinkBinCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "unlink-bin <name[@range]>",
		Aliases: []string{"ulb"},
		Short:   "Remove a package's executables from the global bin directory",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.UnlinkBin(cmd.Context(), args[0])
		},
	}
}
