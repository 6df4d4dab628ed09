package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/qurandb/pkg/app/components"
	"github.com/kerbaras/qurandb/pkg/app/styles"
)

type SurahsScreen struct {
	repo      Repository
	surahList *components.SurahList
	width     int
	height    int
	err       error
}

func NewSurahsScreen(repo Repository) *SurahsScreen {
	return &SurahsScreen{
		repo:      repo,
		surahList: components.NewSurahList(),
	}
}

func (s *SurahsScreen) Init() tea.Cmd {
	return s.loadSurahs
}

func (s *SurahsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.surahList.Width = msg.Width - 4
		s.surahList.Height = msg.Height - 8

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.surahList.Prev()
		case "down", "j":
			s.surahList.Next()
		case "pgup":
			s.surahList.Jump(-10)
		case "pgdown":
			s.surahList.Jump(10)
		case "r":
			return s, s.loadSurahs
		case "enter":
			selected := s.surahList.Selected()
			if selected != nil {
				surah := selected.Surah
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "verses", Data: surah}
				}
			}
		}

	case surahsLoadedMsg:
		s.surahList.SetItems(msg.items)
		s.err = msg.err
	}

	return s, nil
}

func (s *SurahsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("القرآن الكريم · Surahs")

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err))
		errorMsg += "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • pgup/pgdown: jump • enter: read • r: refresh • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, s.surahList.View(), help)
}

// Messages
type surahsLoadedMsg struct {
	items []components.SurahListItem
	err   error
}

// Commands
func (s *SurahsScreen) loadSurahs() tea.Msg {
	ctx := context.Background()

	surahs, err := s.repo.ListSurahs(ctx)
	if err != nil {
		return surahsLoadedMsg{err: err}
	}
	counts, err := s.repo.VerseCounts(ctx)
	if err != nil {
		return surahsLoadedMsg{err: err}
	}

	items := make([]components.SurahListItem, len(surahs))
	for i, surah := range surahs {
		items[i] = components.SurahListItem{Surah: surah, Loaded: counts[surah.Number]}
	}
	return surahsLoadedMsg{items: items}
}
