package models

import "time"

// Book statuses. A record is created as StatusReading and only ever moves to
// StatusFinished or gets deleted.
const (
	StatusReading  = "reading"
	StatusFinished = "finished"
)

// Book is a record in the personal library. Authors and Categories are stored
// as comma-joined strings, matching the persisted layout; the stats aggregator
// splits and trims them on demand. Optional fields are pointers so null is
// explicit in JSON.
type Book struct {
	ID            string     `json:"id" db:"id"`
	GoogleBooksID string     `json:"google_books_id,omitempty" db:"google_books_id"`
	Title         string     `json:"title" db:"title"`
	Authors       string     `json:"authors" db:"authors"`
	Thumbnail     string     `json:"thumbnail,omitempty" db:"thumbnail"`
	Description   string     `json:"description,omitempty" db:"description"`
	PageCount     *int       `json:"page_count" db:"page_count"`
	Categories    string     `json:"categories" db:"categories"`
	Status        string     `json:"status" db:"status"`
	DateAdded     time.Time  `json:"date_added" db:"date_added"`
	DateFinished  *time.Time `json:"date_finished" db:"date_finished"`
	PublishedYear string     `json:"published_year,omitempty" db:"published_year"`
	Language      string     `json:"language,omitempty" db:"language"`
	AverageRating *float64   `json:"average_rating" db:"average_rating"`
}

// CatalogBook is the normalized shape returned by the external book catalog,
// before a record id and library status are attached.
type CatalogBook struct {
	GoogleBooksID string   `json:"google_books_id"`
	Title         string   `json:"title"`
	Authors       string   `json:"authors"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	Description   string   `json:"description,omitempty"`
	PageCount     *int     `json:"page_count"`
	Categories    string   `json:"categories"`
	PublishedYear string   `json:"published_year,omitempty"`
	Language      string   `json:"language,omitempty"`
	AverageRating *float64 `json:"average_rating"`
}

// Library groups the full set of records by status for the index view: books
// being read ordered by date added (newest first), finished books ordered by
// date finished (newest first).
type Library struct {
	Reading  []Book `json:"reading"`
	Finished []Book `json:"finished"`
}
