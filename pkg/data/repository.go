package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Repository struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the store for driver ("sqlite3", "duckdb" or "pgx").
// For file-backed drivers path is the database file and its directory is
// created if missing; for pgx it is a connection string.
func Open(driver, path string) (*Repository, error) {
	d, err := LookupDialect(driver)
	if err != nil {
		return nil, err
	}

	if d.FileBacked && path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}

	db, err := sql.Open(d.Name, d.DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	return &Repository{db: db, dialect: d}, nil
}

// ErrStoreNotFound is returned by OpenExisting when a file-backed store has
// not been created yet.
var ErrStoreNotFound = errors.New("store not found")

// OpenExisting opens a store for reading without creating it. File-backed
// stores must already exist on disk.
func OpenExisting(driver, path string) (*Repository, error) {
	d, err := LookupDialect(driver)
	if err != nil {
		return nil, err
	}
	if d.FileBacked && path != "" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, path)
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return Open(driver, path)
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Replace drops and recreates the surahs and verses tables and inserts every
// row in a single transaction.
func (r *Repository) Replace(ctx context.Context, surahs []Surah, verses []Verse) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range append(append([]string{}, r.dialect.Drop...), r.dialect.Create...) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	surahStmt, err := tx.PrepareContext(ctx, r.dialect.insert("surahs", surahColumns))
	if err != nil {
		return fmt.Errorf("prepare surah insert: %w", err)
	}
	defer surahStmt.Close()

	for _, s := range surahs {
		if _, err := surahStmt.ExecContext(ctx,
			s.Number, s.Name, s.NameEn, s.RevelationType, s.NumberOfAyahs,
		); err != nil {
			return fmt.Errorf("insert surah %d: %w", s.Number, err)
		}
	}

	verseStmt, err := tx.PrepareContext(ctx, r.dialect.insert("verses", verseColumns))
	if err != nil {
		return fmt.Errorf("prepare verse insert: %w", err)
	}
	defer verseStmt.Close()

	for _, v := range verses {
		if _, err := verseStmt.ExecContext(ctx,
			v.SurahNumber, v.AyahInSurah, v.Text, v.HizbQuarter, v.RukuNumber, v.Page, v.Manzil,
			v.Sajda.Int(), v.GlobalAyahNumber, v.SurahName, v.SurahNameEn, v.RevelationType, v.NumberOfAyahs,
		); err != nil {
			return fmt.Errorf("insert verse %d:%d: %w", v.SurahNumber, v.AyahInSurah, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ListSurahs(ctx context.Context) ([]Surah, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT surahNumber, surahName, surahNameEn, revelationType, numberOfAyahs
		FROM surahs
		ORDER BY surahNumber`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surahs []Surah
	for rows.Next() {
		var s Surah
		if err := rows.Scan(&s.Number, &s.Name, &s.NameEn, &s.RevelationType, &s.NumberOfAyahs); err != nil {
			return nil, err
		}
		surahs = append(surahs, s)
	}
	return surahs, rows.Err()
}

// GetSurah returns nil without an error when the surah does not exist.
func (r *Repository) GetSurah(ctx context.Context, number int) (*Surah, error) {
	query := fmt.Sprintf(`
		SELECT surahNumber, surahName, surahNameEn, revelationType, numberOfAyahs
		FROM surahs
		WHERE surahNumber = %s`, r.dialect.Placeholder(1))

	var s Surah
	err := r.db.QueryRowContext(ctx, query, number).
		Scan(&s.Number, &s.Name, &s.NameEn, &s.RevelationType, &s.NumberOfAyahs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) GetVerses(ctx context.Context, surah int) ([]Verse, error) {
	query := fmt.Sprintf(`
		SELECT surahNumber, ayahInSurah, text, hizbQuarter, rukuNumber, page, manzil,
		       sajda, globalAyahNumber, surahName, surahNameEn, revelationType, numberOfAyahs
		FROM verses
		WHERE surahNumber = %s
		ORDER BY ayahInSurah, id`, r.dialect.Placeholder(1))

	rows, err := r.db.QueryContext(ctx, query, surah)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verses []Verse
	for rows.Next() {
		var (
			v     Verse
			sajda int
		)
		if err := rows.Scan(
			&v.SurahNumber, &v.AyahInSurah, &v.Text, &v.HizbQuarter, &v.RukuNumber, &v.Page, &v.Manzil,
			&sajda, &v.GlobalAyahNumber, &v.SurahName, &v.SurahNameEn, &v.RevelationType, &v.NumberOfAyahs,
		); err != nil {
			return nil, err
		}
		v.Sajda = sajda != 0
		verses = append(verses, v)
	}
	return verses, rows.Err()
}

// VerseCounts returns the number of verse rows stored per surah.
func (r *Repository) VerseCounts(ctx context.Context) (map[int]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT surahNumber, COUNT(*) FROM verses GROUP BY surahNumber`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int, SurahCount)
	for rows.Next() {
		var surah, n int
		if err := rows.Scan(&surah, &n); err != nil {
			return nil, err
		}
		counts[surah] = n
	}
	return counts, rows.Err()
}

// Counts returns the number of rows in the surahs and verses tables.
func (r *Repository) Counts(ctx context.Context) (surahs, verses int, err error) {
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surahs`).Scan(&surahs); err != nil {
		return 0, 0, err
	}
	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verses`).Scan(&verses); err != nil {
		return 0, 0, err
	}
	return surahs, verses, nil
}
