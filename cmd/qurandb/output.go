package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/qurandb/pkg/app/styles"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numbers groups digits in counts shown to the user.
var numbers = message.NewPrinter(language.English)

var (
	okStyle   = styles.StatusCompleted
	failStyle = styles.StatusError
	warnStyle = lipgloss.NewStyle().Foreground(styles.Warning)
)

func statusCell(ok bool) string {
	if ok {
		return okStyle.Render("ok")
	}
	return failStyle.Render("failed")
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
