package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/qurandb/pkg/app/screens"
)

type App struct {
	repo screens.Repository
}

func NewApp(repo screens.Repository) *App {
	return &App{repo: repo}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.repo)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
