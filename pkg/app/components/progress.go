package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/qurandb/pkg/app/styles"
	"github.com/kerbaras/qurandb/pkg/services"
)

// ProgressTracker folds fetch progress events into a one-line status.
type ProgressTracker struct {
	last    *services.FetchProgress
	skipped int
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{width: width}
}

func (p *ProgressTracker) Update(progress services.FetchProgress) {
	prog := progress // Copy
	p.last = &prog
	if progress.Status == "skipped" {
		p.skipped++
	}
}

// View renders a single line so it can be redrawn in place with \r.
func (p *ProgressTracker) View() string {
	if p.last == nil || p.last.Total == 0 {
		return ""
	}
	prog := p.last

	done := prog.Unit
	if prog.Status == "fetching" {
		done--
	}
	percentage := float64(done) / float64(prog.Total) * 100

	label := fmt.Sprintf("%s %d/%d", prog.Mode, prog.Unit, prog.Total)
	bar := renderProgressBar(done, prog.Total, p.width-4)
	status := styles.StatusStyle(prog.Status).Render(fmt.Sprintf("%-8s", prog.Status))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %3.0f%% %s verses:%d", bar, status, percentage, label, prog.Verses)
	if p.skipped > 0 {
		b.WriteString(styles.StatusError.Render(fmt.Sprintf(" skipped:%d", p.skipped)))
	}
	if prog.Error != nil {
		msg := strings.Join(strings.Fields(prog.Error.Error()), " ")
		b.WriteString(styles.StatusError.Render(" error: " + truncate(msg, 40)))
	}
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
