package main

import (
	"tango/internal/console"

	"github.com/spf13/cobra"
)

func newWordsCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show learning progress of the stored word list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.openServices(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			out := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			out.PrintStats(svc.stats.Summary(cmd.Context()))
			if list {
				out.PrintWords(svc.study.Words(cmd.Context()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "print every word")

	return cmd
}
