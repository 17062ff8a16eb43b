package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) columnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns PRIMARY SECONDARY",
		Short: "List the columns two files share",
		Long: `List the columns present in both files, in primary file order.

The first column listed is the default merge key.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadPair(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, col := range s.Columns() {
				if i == 0 {
					fmt.Fprintf(out, "%s (default)\n", col)
					continue
				}
				fmt.Fprintln(out, col)
			}
			return nil
		},
	}
}
