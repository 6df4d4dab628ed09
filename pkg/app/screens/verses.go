package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/qurandb/pkg/app/styles"
	"github.com/kerbaras/qurandb/pkg/data"
)

// VersesScreen shows one surah in a scrollable viewport.
type VersesScreen struct {
	repo     Repository
	surah    data.Surah
	verses   []data.Verse
	viewport viewport.Model
	ready    bool
	width    int
	height   int
	err      error
}

func NewVersesScreen(repo Repository, surah data.Surah) *VersesScreen {
	return &VersesScreen{repo: repo, surah: surah}
}

func (s *VersesScreen) Init() tea.Cmd {
	return s.loadVerses
}

func (s *VersesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "surahs"}
			}
		case "r":
			return s, s.loadVerses
		}

	case versesLoadedMsg:
		if msg.surah != s.surah.Number {
			return s, nil
		}
		if msg.info != nil {
			s.surah = *msg.info
		}
		s.verses = msg.verses
		s.err = msg.err
		s.refreshContent()
		return s, nil
	}

	if !s.ready {
		return s, nil
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

func (s *VersesScreen) resize(width, height int) {
	s.width = width
	s.height = height
	vpHeight := max(1, height-6)
	if !s.ready {
		s.viewport = viewport.New(width, vpHeight)
		s.ready = true
	} else {
		s.viewport.Width = width
		s.viewport.Height = vpHeight
	}
	s.refreshContent()
}

func (s *VersesScreen) refreshContent() {
	if !s.ready {
		return
	}
	s.viewport.SetContent(renderVerses(s.verses, s.width))
}

func (s *VersesScreen) View() string {
	if !s.ready {
		return "Loading..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.Render(fmt.Sprintf("%d. %s", s.surah.Number, s.surah.NameEn)),
		"  ",
		styles.RevelationStyle(s.surah.RevelationType).Render(s.surah.Name),
	)

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n"
	}

	footer := styles.MutedStyle.Render(fmt.Sprintf("%d/%d verses · %3.0f%%",
		len(s.verses), s.surah.NumberOfAyahs, s.viewport.ScrollPercent()*100))
	help := styles.HelpStyle.Render("↑/↓ pgup/pgdown: scroll • r: reload • esc: back • q: quit")

	return fmt.Sprintf("%s\n%s%s\n%s\n%s", header, errorMsg, s.viewport.View(), footer, help)
}

// renderVerses lays verses out right aligned, each followed by its number
// and a sajda mark where one applies.
func renderVerses(verses []data.Verse, width int) string {
	if len(verses) == 0 {
		return styles.MutedStyle.Render("No verses stored for this surah.")
	}

	style := styles.VerseStyle
	if width > 2 {
		style = style.Width(width - 2)
	}

	lines := make([]string, 0, len(verses))
	for _, v := range verses {
		text := v.Text + " " + styles.VerseNumberStyle.Render(fmt.Sprintf("﴿%d﴾", v.AyahInSurah))
		if v.Sajda {
			text += " " + styles.SajdaStyle.Render("۩")
		}
		lines = append(lines, style.Render(text))
	}
	return strings.Join(lines, "\n\n")
}

// Messages
type versesLoadedMsg struct {
	surah  int
	info   *data.Surah
	verses []data.Verse
	err    error
}

// Commands
func (s *VersesScreen) loadVerses() tea.Msg {
	ctx := context.Background()
	info, err := s.repo.GetSurah(ctx, s.surah.Number)
	if err != nil {
		return versesLoadedMsg{surah: s.surah.Number, err: err}
	}
	verses, err := s.repo.GetVerses(ctx, s.surah.Number)
	return versesLoadedMsg{surah: s.surah.Number, info: info, verses: verses, err: err}
}
