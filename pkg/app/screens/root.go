package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/qurandb/pkg/data"
)

// Repository is the read side of the store the browser needs.
type Repository interface {
	ListSurahs(ctx context.Context) ([]data.Surah, error)
	GetSurah(ctx context.Context, number int) (*data.Surah, error)
	GetVerses(ctx context.Context, surah int) ([]data.Verse, error)
	VerseCounts(ctx context.Context) (map[int]int, error)
}

type screenType int

const (
	surahsView screenType = iota
	versesView
)

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type RootScreen struct {
	repo Repository

	currentView screenType
	surahs      *SurahsScreen
	verses      *VersesScreen

	width  int
	height int
}

func NewRootScreen(repo Repository) *RootScreen {
	return &RootScreen{
		repo:        repo,
		currentView: surahsView,
		surahs:      NewSurahsScreen(repo),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.surahs.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		// Both screens track the size so a switch renders at once.
		r.surahs.Update(msg)
		if r.verses != nil {
			r.verses.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return r, tea.Quit
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "surahs":
			r.currentView = surahsView
		case "verses":
			if surah, ok := msg.Data.(data.Surah); ok {
				r.verses = NewVersesScreen(r.repo, surah)
				r.verses.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height})
				r.currentView = versesView
				cmd = r.verses.Init()
			}
		}
		return r, cmd
	}

	// Forward message to active screen
	switch r.currentView {
	case surahsView:
		_, cmd = r.surahs.Update(msg)
	case versesView:
		if r.verses != nil {
			_, cmd = r.verses.Update(msg)
		}
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	if r.currentView == versesView && r.verses != nil {
		return r.verses.View()
	}
	return r.surahs.View()
}
