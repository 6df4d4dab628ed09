package screens

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/qurandb/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	surahs []data.Surah
	verses map[int][]data.Verse
	err    error
}

func (f *fakeRepository) ListSurahs(ctx context.Context) ([]data.Surah, error) {
	return f.surahs, f.err
}

func (f *fakeRepository) GetSurah(ctx context.Context, number int) (*data.Surah, error) {
	for i := range f.surahs {
		if f.surahs[i].Number == number {
			s := f.surahs[i]
			return &s, f.err
		}
	}
	return nil, f.err
}

func (f *fakeRepository) GetVerses(ctx context.Context, surah int) ([]data.Verse, error) {
	return f.verses[surah], f.err
}

func (f *fakeRepository) VerseCounts(ctx context.Context) (map[int]int, error) {
	counts := map[int]int{}
	for n, verses := range f.verses {
		counts[n] = len(verses)
	}
	return counts, f.err
}

func testRepository() *fakeRepository {
	return &fakeRepository{
		surahs: []data.Surah{
			{Number: 1, Name: "سورة الفاتحة", NameEn: "Al-Faatiha", RevelationType: "Meccan", NumberOfAyahs: 2},
			{Number: 2, Name: "سورة البقرة", NameEn: "Al-Baqara", RevelationType: "Medinan", NumberOfAyahs: 1},
		},
		verses: map[int][]data.Verse{
			1: {
				{SurahNumber: 1, AyahInSurah: 1, Text: "بِسْمِ ٱللَّهِ"},
				{SurahNumber: 1, AyahInSurah: 2, Text: "ٱلْحَمْدُ لِلَّهِ", Sajda: true},
			},
			2: {{SurahNumber: 2, AyahInSurah: 1, Text: "الم"}},
		},
	}
}

// run feeds msg to the model and then every message its commands produce,
// stopping at commands that quit.
func run(t *testing.T, model tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		var cmd tea.Cmd
		model, cmd = model.Update(next)
		if cmd == nil {
			continue
		}
		out := cmd()
		if _, ok := out.(tea.QuitMsg); ok || out == nil {
			continue
		}
		queue = append(queue, out)
	}
	return model
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedRoot(t *testing.T, repo Repository) *RootScreen {
	t.Helper()
	root := NewRootScreen(repo)
	run(t, root, tea.WindowSizeMsg{Width: 100, Height: 30})
	run(t, root, root.Init()())
	return root
}

func TestRootScreenListsSurahs(t *testing.T) {
	root := newLoadedRoot(t, testRepository())

	view := root.View()
	assert.Contains(t, view, "Al-Faatiha")
	assert.Contains(t, view, "Al-Baqara")
	assert.Contains(t, view, "2/2")
	assert.Equal(t, surahsView, root.currentView)
}

func TestRootScreenOpensVerses(t *testing.T) {
	root := newLoadedRoot(t, testRepository())

	run(t, root, key("enter"))
	require.Equal(t, versesView, root.currentView)
	require.NotNil(t, root.verses)
	assert.Equal(t, 1, root.verses.surah.Number)

	view := root.View()
	assert.Contains(t, view, "Al-Faatiha")
	assert.Contains(t, view, "بِسْمِ ٱللَّهِ")
	assert.Contains(t, view, "﴿2﴾")
	assert.Contains(t, view, "۩")
	assert.Contains(t, view, "2/2 verses")

	run(t, root, key("esc"))
	assert.Equal(t, surahsView, root.currentView)
}

func TestRootScreenSelectsSecondSurah(t *testing.T) {
	root := newLoadedRoot(t, testRepository())

	run(t, root, key("down"))
	run(t, root, key("enter"))
	require.NotNil(t, root.verses)
	assert.Equal(t, 2, root.verses.surah.Number)
	assert.Contains(t, root.View(), "الم")
	assert.NotContains(t, root.View(), "۩")
}

func TestRootScreenQuit(t *testing.T) {
	root := NewRootScreen(testRepository())

	_, cmd := root.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSurahsScreenError(t *testing.T) {
	repo := &fakeRepository{err: errors.New("no such table: surahs")}
	root := newLoadedRoot(t, repo)

	assert.Contains(t, root.View(), "Error: no such table: surahs")
}

func TestSurahsScreenEmpty(t *testing.T) {
	root := newLoadedRoot(t, &fakeRepository{})

	assert.Contains(t, root.View(), "No surahs loaded")

	// Enter on an empty list does nothing.
	run(t, root, key("enter"))
	assert.Equal(t, surahsView, root.currentView)
}

func TestVersesScreenIgnoresStaleResults(t *testing.T) {
	repo := testRepository()
	screen := NewVersesScreen(repo, repo.surahs[0])
	screen.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	screen.Update(versesLoadedMsg{surah: 2, verses: repo.verses[2]})
	assert.Empty(t, screen.verses)

	screen.Update(screen.loadVerses())
	assert.Len(t, screen.verses, 2)
}

func TestVersesScreenReloadRefreshesHeader(t *testing.T) {
	repo := testRepository()
	screen := NewVersesScreen(repo, data.Surah{Number: 1, NameEn: "stale"})
	screen.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Contains(t, screen.View(), "stale")

	run(t, screen, key("r"))
	assert.Equal(t, "Al-Faatiha", screen.surah.NameEn)
	assert.Contains(t, screen.View(), "1. Al-Faatiha")
	assert.Contains(t, screen.View(), "2/2 verses")
}

func TestVersesScreenLookupError(t *testing.T) {
	repo := testRepository()
	repo.err = errors.New("database is locked")
	screen := NewVersesScreen(repo, repo.surahs[0])
	screen.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	screen.Update(screen.loadVerses())
	assert.Empty(t, screen.verses)
	assert.Contains(t, screen.View(), "database is locked")
	assert.Equal(t, "Al-Faatiha", screen.surah.NameEn)
}

func TestRenderVersesEmpty(t *testing.T) {
	assert.Contains(t, renderVerses(nil, 80), "No verses stored")
}
