package main

import (
	"errors"
	"os"
	"os/signal"

	"tango/internal/console"
	"tango/internal/domain"

	"github.com/spf13/cobra"
)

func newQuizCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Answer the english word for each japanese meaning",
		Long: `Asks every stored word in random order. Answers are compared ignoring
surrounding spaces and letter case. After a round you can restart it or
retry only the words you got wrong.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc, closeStore, err := a.openServices(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			quiz, err := svc.study.StartQuiz(ctx)
			if errors.Is(err, domain.ErrNoWords) {
				cmd.Println("no words registered, run `tango import` first")
				return nil
			}
			if err != nil {
				return err
			}

			return console.New(cmd.InOrStdin(), cmd.OutOrStdout()).RunQuiz(ctx, quiz)
		},
	}
}
