package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/incubator/internal/cli/formatter"
	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/domain"
	"github.com/alexanderramin/incubator/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// maxBMCLog bounds the scrollback kept in the view.
const maxBMCLog = 40

type bmcKeyMap struct {
	Submit key.Binding
	Quit   key.Binding
}

var bmcKeys = bmcKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

type bmcQuestionMsg struct {
	question *contract.BMCQuestion
	err      error
}

type bmcProgressMsg struct {
	progress *contract.BMCProgress
	err      error
}

// bmcModel is the interactive canvas walk-through. Every coach call runs as a
// tea.Cmd so the spinner keeps animating while the model answers.
type bmcModel struct {
	ctx       context.Context
	coach     service.CoachService
	studentID string

	input   textinput.Model
	spinner spinner.Model
	waiting bool

	question  *contract.BMCQuestion
	completed bool
	log       []string
	err       error
	quitting  bool
}

func newBMCModel(ctx context.Context, coach service.CoachService, studentID string) bmcModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "type your answer, or /skip /again /quit"
	ti.CharLimit = 2000

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)

	return bmcModel{
		ctx:       ctx,
		coach:     coach,
		studentID: studentID,
		input:     ti,
		spinner:   sp,
		waiting:   true,
	}
}

func (m bmcModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.fetchQuestion())
}

func (m bmcModel) fetchQuestion() tea.Cmd {
	ctx, coach, id := m.ctx, m.coach, m.studentID
	return func() tea.Msg {
		q, err := coach.NextBMCQuestion(ctx, id)
		return bmcQuestionMsg{question: q, err: err}
	}
}

func (m bmcModel) apply(action bmcAction, line string) tea.Cmd {
	ctx, coach, id := m.ctx, m.coach, m.studentID
	return func() tea.Msg {
		p, err := applyBMCAction(ctx, coach, id, action, line)
		return bmcProgressMsg{progress: p, err: err}
	}
}

func (m bmcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, bmcKeys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, bmcKeys.Submit) {
			if m.waiting {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			return m.handleInput(line)
		}

	case bmcQuestionMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.question = msg.question
		m.appendLog(formatter.FormatQuestion(msg.question))
		return m, nil

	case bmcProgressMsg:
		if msg.err != nil {
			m.waiting = false
			m.err = msg.err
			return m, tea.Quit
		}
		if p := msg.progress; p != nil && p.Completed && !m.completed {
			m.completed = true
			m.appendLog(formatter.StyleGreen.Render(canvasCompleteNote))
		}
		return m, m.fetchQuestion()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m bmcModel) handleInput(line string) (tea.Model, tea.Cmd) {
	action := parseBMCInput(line)
	switch action {
	case bmcQuit:
		m.quitting = true
		return m, tea.Quit
	case bmcAgain:
		m.waiting = true
		return m, m.fetchQuestion()
	case bmcAnswer:
		m.appendLog(formatter.Dim("You: ") + line)
	}
	m.waiting = true
	return m, m.apply(action, line)
}

func (m *bmcModel) appendLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > maxBMCLog {
		m.log = m.log[len(m.log)-maxBMCLog:]
	}
}

func (m bmcModel) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Business Model Canvas"))
	b.WriteString("\n")
	if m.question != nil {
		progress := m.question.Progress
		if m.completed && progress < domain.SectionCount {
			progress = domain.SectionCount
		}
		b.WriteString(formatter.Dim("student " + m.studentID + "  "))
		b.WriteString(formatter.RenderCanvasProgress(progress, domain.SectionCount))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, entry := range m.log {
		b.WriteString(entry)
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.quitting {
		b.WriteString(formatter.Dim("Session kept until it expires."))
		b.WriteString("\n")
		return b.String()
	}

	if m.waiting {
		b.WriteString(m.spinner.View() + formatter.Dim(" thinking..."))
	} else {
		b.WriteString(formatter.StylePurple.Render("bmc") + formatter.Dim("> "))
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim(bmcKeys.Submit.Help().Key + " " + bmcKeys.Submit.Help().Desc + " · " +
		bmcKeys.Quit.Help().Key + " " + bmcKeys.Quit.Help().Desc))

	return b.String()
}
