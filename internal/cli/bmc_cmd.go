package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/incubator/internal/cli/formatter"
	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBMCCmd(app *App) *cobra.Command {
	var student string

	cmd := &cobra.Command{
		Use:   "bmc",
		Short: "Walk through the Business Model Canvas one question at a time",
		Long: `Starts a fresh canvas session and asks one question per section.
Type an answer to record it and move on, or use:
  /skip   move to the next section without answering
  /again  ask the current section again
  /quit   leave the walk-through`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveStudentID(app, student)
			if err != nil {
				return err
			}
			if _, err := app.Coach.StartSession(ctx, id); err != nil {
				return err
			}

			if app.interactive() {
				p := tea.NewProgram(newBMCModel(ctx, app.Coach, id),
					tea.WithInput(app.stdin()), tea.WithOutput(app.stdout()))
				final, err := p.Run()
				if err != nil {
					return err
				}
				if m, ok := final.(bmcModel); ok && m.err != nil {
					return m.err
				}
				return nil
			}
			return runBMCLines(ctx, app.Coach, id, app.stdin(), app.stdout())
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "student id the session belongs to")

	return cmd
}

type bmcAction int

const (
	bmcAnswer bmcAction = iota
	bmcSkip
	bmcAgain
	bmcQuit
)

// parseBMCInput classifies one line typed during the walk-through.
func parseBMCInput(line string) bmcAction {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "/skip", "/next":
		return bmcSkip
	case "/again", "/repeat":
		return bmcAgain
	case "/quit", "/exit", "/q":
		return bmcQuit
	default:
		return bmcAnswer
	}
}

const canvasCompleteNote = "Every section has been covered. Keep refining or /quit."

// applyBMCAction performs an answer or a skip and returns the new position.
// /again has nothing to apply and returns nil.
func applyBMCAction(ctx context.Context, coach service.CoachService, studentID string, action bmcAction, line string) (*contract.BMCProgress, error) {
	switch action {
	case bmcSkip:
		return coach.Advance(ctx, studentID)
	case bmcAnswer:
		return coach.Answer(ctx, studentID, strings.TrimSpace(line))
	default:
		return nil, nil
	}
}

// runBMCLines is the walk-through for pipes and dumb terminals: one question
// per prompt, one answer per line, until /quit or end of input.
func runBMCLines(ctx context.Context, coach service.CoachService, studentID string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	completed := false

	ask := func() error {
		q, err := coach.NextBMCQuestion(ctx, studentID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatter.FormatQuestion(q))
		fmt.Fprint(out, formatter.StylePurple.Render("> "))
		return nil
	}

	if err := ask(); err != nil {
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(out, formatter.StylePurple.Render("> "))
			continue
		}

		action := parseBMCInput(line)
		if action == bmcQuit {
			fmt.Fprintln(out, formatter.Dim("Session kept until it expires."))
			return nil
		}
		p, err := applyBMCAction(ctx, coach, studentID, action, line)
		if err != nil {
			return err
		}
		if p != nil {
			fmt.Fprintln(out, formatter.FormatProgress(p))
			if p.Completed && !completed {
				completed = true
				fmt.Fprintln(out, formatter.StyleGreen.Render(canvasCompleteNote))
			}
		}
		fmt.Fprintln(out)
		if err := ask(); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading answers: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}
