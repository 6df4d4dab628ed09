package data

import (
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"
	_ "github.com/mattn/go-sqlite3"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// Dialect holds the driver-specific SQL for one database engine.
type Dialect struct {
	Name string
	// FileBacked dialects get their parent directory created on open.
	FileBacked  bool
	DSN         func(path string) string
	Drop        []string
	Create      []string
	Placeholder func(n int) string
}

var surahColumns = []string{
	"surahNumber", "surahName", "surahNameEn", "revelationType", "numberOfAyahs",
}

var verseColumns = []string{
	"surahNumber", "ayahInSurah", "text", "hizbQuarter", "rukuNumber", "page", "manzil",
	"sajda", "globalAyahNumber", "surahName", "surahNameEn", "revelationType", "numberOfAyahs",
}

const createSurahs = `
CREATE TABLE surahs (
  surahNumber    INTEGER NOT NULL PRIMARY KEY,
  surahName      TEXT NOT NULL,
  surahNameEn    TEXT NOT NULL,
  revelationType TEXT NOT NULL,
  numberOfAyahs  INTEGER NOT NULL
)`

// verseTable renders the verses DDL around a dialect's id column and
// foreign key clause.
func verseTable(idColumn, foreignKey string) string {
	return `
CREATE TABLE verses (
  ` + idColumn + `,
  surahNumber      INTEGER NOT NULL,
  ayahInSurah      INTEGER NOT NULL,
  text             TEXT NOT NULL,
  hizbQuarter      INTEGER NOT NULL,
  rukuNumber       INTEGER NOT NULL,
  page             INTEGER NOT NULL,
  manzil           INTEGER NOT NULL,
  sajda            INTEGER NOT NULL,
  globalAyahNumber INTEGER NOT NULL,
  surahName        TEXT NOT NULL,
  surahNameEn      TEXT NOT NULL,
  revelationType   TEXT NOT NULL,
  numberOfAyahs    INTEGER NOT NULL,
  ` + foreignKey + `
)`
}

const createVerseIndex = `CREATE INDEX index_verses_on_surahNumber ON verses (surahNumber)`

func questionMark(int) string { return "?" }

func dollar(n int) string { return fmt.Sprintf("$%d", n) }

var dialects = map[string]Dialect{
	"sqlite3": {
		Name:       "sqlite3",
		FileBacked: true,
		DSN: func(path string) string {
			return path + "?_foreign_keys=on"
		},
		Drop: []string{
			`DROP TABLE IF EXISTS verses`,
			`DROP TABLE IF EXISTS surahs`,
		},
		Create: []string{
			createSurahs,
			verseTable(
				"id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT",
				"FOREIGN KEY(surahNumber) REFERENCES surahs(surahNumber) ON DELETE CASCADE",
			),
			createVerseIndex,
		},
		Placeholder: questionMark,
	},
	// DuckDB has no AUTOINCREMENT and rejects cascading foreign key actions.
	"duckdb": {
		Name:       "duckdb",
		FileBacked: true,
		DSN:        func(path string) string { return path },
		Drop: []string{
			`DROP TABLE IF EXISTS verses`,
			`DROP TABLE IF EXISTS surahs`,
			`DROP SEQUENCE IF EXISTS verses_id_seq`,
		},
		Create: []string{
			`CREATE SEQUENCE verses_id_seq START 1`,
			createSurahs,
			verseTable(
				"id BIGINT NOT NULL PRIMARY KEY DEFAULT nextval('verses_id_seq')",
				"FOREIGN KEY(surahNumber) REFERENCES surahs(surahNumber)",
			),
			createVerseIndex,
		},
		Placeholder: questionMark,
	},
	"pgx": {
		Name:       "pgx",
		FileBacked: false,
		DSN:        func(path string) string { return path },
		Drop: []string{
			`DROP TABLE IF EXISTS verses CASCADE`,
			`DROP TABLE IF EXISTS surahs CASCADE`,
		},
		Create: []string{
			createSurahs,
			verseTable(
				"id BIGSERIAL NOT NULL PRIMARY KEY",
				"FOREIGN KEY(surahNumber) REFERENCES surahs(surahNumber) ON DELETE CASCADE",
			),
			createVerseIndex,
		},
		Placeholder: dollar,
	},
}

// LookupDialect returns the dialect registered for driver.
func LookupDialect(driver string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return d, nil
}

// Drivers lists the supported driver names.
func Drivers() []string {
	return []string{"sqlite3", "duckdb", "pgx"}
}

func (d Dialect) insert(table string, columns []string) string {
	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "))
}
