package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCanvasProgress renders the walk position as a bar of one block per
// section, like [███░░░░░░] 3/9. Sections already visited are filled. Once
// every section has been visited the bar turns green and stays full.
func RenderCanvasProgress(progress, total int) string {
	if total < 1 {
		total = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := progress
	if filled > total {
		filled = total
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, total-filled)

	style := StyleYellow
	if progress >= total {
		style = StyleGreen
	}

	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), filled, total)
}
