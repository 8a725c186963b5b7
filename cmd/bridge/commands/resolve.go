package commands

import "github.com/spf13/cobra"

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <specifier>",
		Short: "Show how a module specifier resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			_, err := c.app.Resolve(cmd.Context(), args[0], from)
			return err
		},
	}

	cmd.Flags().String("from", "", "File performing the require (default: index.js in the working directory)")

	return cmd
}

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <file.js> [args...]",
		Short: "Run a script with modules resolved through the registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Exec(cmd.Context(), args[0], args[1:])
		},
	}

	// Everything after the script belongs to the script.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
