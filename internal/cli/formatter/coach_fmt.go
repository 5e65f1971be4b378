package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/incubator/internal/contract"
	"github.com/alexanderramin/incubator/internal/domain"
)

// FormatSectionLine renders "Key Partners · الشركاء الرئيسيون  [█░░…] 1/9".
func FormatSectionLine(section domain.Section, progress, total int) string {
	return fmt.Sprintf("%s %s %s  %s",
		StyleBlue.Render(section.Name),
		Dim("·"),
		StyleFg.Render(section.Label),
		RenderCanvasProgress(progress, total),
	)
}

// FormatQuestion renders a canvas question with its section and position.
func FormatQuestion(q *contract.BMCQuestion) string {
	var b strings.Builder
	b.WriteString(FormatSectionLine(q.Section, q.Progress, q.TotalSections))
	b.WriteString("\n")
	b.WriteString(StylePurple.Render("? ") + Bold(q.Question))
	if q.Fallback {
		b.WriteString("\n")
		b.WriteString(Dim("  (offline question)"))
	}
	return b.String()
}

// FormatProgress describes the cursor after an answer or a skip.
func FormatProgress(p *contract.BMCProgress) string {
	line := FormatSectionLine(p.Section, p.Progress, p.TotalSections)
	if p.Completed {
		line += "  " + StyleGreen.Render("✔ canvas complete")
	}
	return line
}

// FormatChatReply renders a design answer with its topic label.
func FormatChatReply(r *contract.ChatReply, topicLabel string) string {
	var b strings.Builder
	title := topicLabel
	if title == "" {
		title = r.Topic
	}
	b.WriteString(StylePurple.Render("◆ ") + StyleHeader.Render(title))
	b.WriteString("\n\n")
	b.WriteString(r.Response)
	if r.Fallback {
		b.WriteString("\n\n")
		b.WriteString(Dim("(offline answer: the model was unavailable)"))
	}
	return b.String()
}

// FormatCallTable renders recent model calls, newest first.
func FormatCallTable(calls []*domain.LLMCall, now time.Time) string {
	if len(calls) == 0 {
		return Dim("No model calls recorded yet.")
	}

	headers := []string{"WHEN", "TASK", "BACKEND", "MODEL", "TRIES", "LATENCY", "RESULT"}
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			Dim(HumanTimestampFrom(c.CreatedAt, now)),
			c.Task,
			c.Backend,
			Truncate(c.Model, 24),
			fmt.Sprintf("%d", c.Attempts),
			FormatLatency(c.LatencyMs),
			CallResult(c.Success, c.ErrorCode),
		})
	}
	return RenderTable(headers, rows, 4, 5)
}

// FormatCallSummary renders the aggregate line and the failure breakdown.
func FormatCallSummary(s *domain.CallSummary) string {
	var b strings.Builder
	b.WriteString(Header("Model calls"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d   %s %s   %s %s   %s %s\n",
		Dim("total"), s.Total,
		Dim("ok"), StyleGreen.Render(fmt.Sprintf("%d", s.Succeeded)),
		Dim("failed"), StyleRed.Render(fmt.Sprintf("%d", s.Failed)),
		Dim("success"), fmt.Sprintf("%.0f%%", s.SuccessRate()*100),
	)
	fmt.Fprintf(&b, "%s %s\n", Dim("avg latency"), FormatLatency(int64(s.AvgLatencyMs)))

	if len(s.ByErrorCode) > 0 {
		codes := make([]string, 0, len(s.ByErrorCode))
		for code := range s.ByErrorCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(&b, "  %s %d\n", CallResult(false, code), s.ByErrorCode[code])
		}
	}
	return b.String()
}
