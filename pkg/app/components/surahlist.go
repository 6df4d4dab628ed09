package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/qurandb/pkg/app/styles"
	"github.com/kerbaras/qurandb/pkg/data"
)

type SurahListItem struct {
	Surah data.Surah
	// Loaded is the number of verse rows stored for the surah.
	Loaded int
}

// Complete reports whether every verse of the surah is stored.
func (i SurahListItem) Complete() bool {
	return i.Loaded == i.Surah.NumberOfAyahs
}

type SurahList struct {
	Items         []SurahListItem
	SelectedIndex int
	Width         int
	Height        int
}

func NewSurahList() *SurahList {
	return &SurahList{
		Items:         []SurahListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *SurahList) SetItems(items []SurahListItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *SurahList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *SurahList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

// Jump moves the selection by delta rows, stopping at either end.
func (m *SurahList) Jump(delta int) {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex = max(0, min(len(m.Items)-1, m.SelectedIndex+delta))
}

func (m *SurahList) Selected() *SurahListItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// Window returns the [start, end) range of rows that fit in Height and
// keep the selection visible.
func (m *SurahList) Window() (int, int) {
	rows := m.Height
	if rows < 1 {
		rows = 1
	}
	if len(m.Items) <= rows {
		return 0, len(m.Items)
	}
	start := m.SelectedIndex - rows/2
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(m.Items) {
		end = len(m.Items)
		start = end - rows
	}
	return start, end
}

func (m *SurahList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No surahs loaded. Run `qurandb fetch` and `qurandb load` first.")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	start, end := m.Window()
	for i := start; i < end; i++ {
		item := m.Items[i]

		marker := "●"
		markerStyle := styles.StatusCompleted
		if !item.Complete() {
			marker = "○"
			markerStyle = styles.StatusError
		}

		line := fmt.Sprintf("%3d  %-22s %-8s %3d/%-3d",
			item.Surah.Number, item.Surah.NameEn, item.Surah.RevelationType, item.Loaded, item.Surah.NumberOfAyahs)

		if i == m.SelectedIndex {
			line = styles.SelectedStyle.Render("› " + line)
		} else {
			line = styles.TextStyle.Render("  " + line)
		}
		b.WriteString(markerStyle.Render(marker))
		b.WriteString(" ")
		b.WriteString(line)
		b.WriteString("  ")
		b.WriteString(styles.RevelationStyle(item.Surah.RevelationType).Render(item.Surah.Name))
		b.WriteString("\n")
	}

	if end-start < len(m.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d surahs", start+1, end, len(m.Items)),
		))
		b.WriteString("\n")
	}

	return b.String()
}
