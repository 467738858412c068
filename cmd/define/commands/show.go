package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted snapshot for the config in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			snapshot, err := c.app.Show(cmd.Context(), cwd)
			if err != nil {
				return err
			}
			fmt.Println(snapshot)
			return nil
		},
	}
}
