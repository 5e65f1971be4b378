package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/incubator/internal/cli/formatter"
	"github.com/alexanderramin/incubator/internal/intelligence"
	"github.com/spf13/cobra"
)

const defaultAskStudent = "cli"

func newAskCmd(app *App) *cobra.Command {
	var student string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the design assistant a one-off question",
		Long: `Sends one design question and prints the advice. Works offline:
when no model is reachable the answer comes from built-in best practices.`,
		Example: `  incubator ask "كيف أصمم شعار لمشروعي؟"
  incubator ask --student s-1024 "how should my landing page look?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.TrimSpace(strings.Join(args, " "))
			out := app.stdout()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(out, "Thinking...")
			}
			reply, err := app.Coach.Chat(cmd.Context(), student, message)
			stop()
			if err != nil {
				return err
			}

			label := intelligence.Topic(reply.Topic).Label()
			fmt.Fprintln(out, formatter.FormatChatReply(reply, label))
			return nil
		},
	}

	cmd.Flags().StringVar(&student, "student", defaultAskStudent, "student id the design session belongs to")

	return cmd
}
