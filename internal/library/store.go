package library

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookworm-labs/alexandria/pkg/models"
)

var (
	// ErrNotFound is returned when a referenced record id is absent.
	ErrNotFound = errors.New("library: record not found")
	// ErrDuplicate is returned when a record with the same external catalog id
	// already exists.
	ErrDuplicate = errors.New("library: duplicate catalog id")
)

const bookColumns = `id, google_books_id, title, authors, thumbnail, description,
    page_count, categories, status, date_added, date_finished,
    published_year, language, average_rating`

// Store holds the personal library records. All writes are single-row; the
// duplicate-import invariant is enforced by the UNIQUE constraint on
// google_books_id.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add inserts a new record. Returns ErrDuplicate when the catalog id is
// already present.
func (s *Store) Add(book *models.Book) error {
	query := `INSERT INTO books (` + bookColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(
		query,
		book.ID,
		nullString(book.GoogleBooksID),
		book.Title,
		book.Authors,
		book.Thumbnail,
		book.Description,
		nullIntPtr(book.PageCount),
		book.Categories,
		book.Status,
		book.DateAdded,
		nullTimePtr(book.DateFinished),
		nullString(book.PublishedYear),
		nullString(book.Language),
		nullFloatPtr(book.AverageRating),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("library: insert record: %w", err)
	}
	return nil
}

// ListAll returns every record ordered by date added, newest first.
func (s *Store) ListAll() ([]models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY date_added DESC`
	return s.queryBooks(query)
}

// ListByStatus returns the records with the given status. Reading records are
// ordered by date added, finished records by date finished, newest first.
func (s *Store) ListByStatus(status string) ([]models.Book, error) {
	order := "date_added DESC"
	if status == models.StatusFinished {
		order = "date_finished DESC"
	}
	query := `SELECT ` + bookColumns + ` FROM books WHERE status = ? ORDER BY ` + order
	return s.queryBooks(query, status)
}

// GetByID returns a single record or ErrNotFound.
func (s *Store) GetByID(id string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	row := s.db.QueryRow(query, id)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("library: get record: %w", err)
	}
	return book, nil
}

// GetByGoogleBooksID returns the record imported from the given catalog entry,
// or ErrNotFound.
func (s *Store) GetByGoogleBooksID(googleBooksID string) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE google_books_id = ?`
	row := s.db.QueryRow(query, googleBooksID)
	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("library: get record by catalog id: %w", err)
	}
	return book, nil
}

// MarkFinished transitions a record to finished and stamps the completion
// time. Returns ErrNotFound when the id is absent.
func (s *Store) MarkFinished(id string, now time.Time) error {
	result, err := s.db.Exec(
		`UPDATE books SET status = ?, date_finished = ? WHERE id = ?`,
		models.StatusFinished, now, id,
	)
	if err != nil {
		return fmt.Errorf("library: mark finished: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("library: mark finished: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record. Returns ErrNotFound when the id is absent.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("library: delete record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("library: delete record: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryBooks(query string, args ...interface{}) ([]models.Book, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("library: list records: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("library: scan record: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("library: list records: %w", err)
	}
	return books, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	var book models.Book
	var googleBooksID, publishedYear, language sql.NullString
	var pageCount sql.NullInt64
	var dateFinished sql.NullTime
	var averageRating sql.NullFloat64

	err := row.Scan(
		&book.ID,
		&googleBooksID,
		&book.Title,
		&book.Authors,
		&book.Thumbnail,
		&book.Description,
		&pageCount,
		&book.Categories,
		&book.Status,
		&book.DateAdded,
		&dateFinished,
		&publishedYear,
		&language,
		&averageRating,
	)
	if err != nil {
		return nil, err
	}

	book.GoogleBooksID = googleBooksID.String
	book.PublishedYear = publishedYear.String
	book.Language = language.String
	if pageCount.Valid {
		pages := int(pageCount.Int64)
		book.PageCount = &pages
	}
	if dateFinished.Valid {
		finished := dateFinished.Time
		book.DateFinished = &finished
	}
	if averageRating.Valid {
		rating := averageRating.Float64
		book.AverageRating = &rating
	}
	return &book, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloatPtr(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
