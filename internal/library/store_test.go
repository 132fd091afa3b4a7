package library_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bookworm-labs/alexandria/internal/library"
	"github.com/bookworm-labs/alexandria/pkg/database"
	"github.com/bookworm-labs/alexandria/pkg/models"
	"github.com/google/uuid"
)

func setupStore(t *testing.T) (*library.Store, func()) {
	t.Helper()
	dbPath := t.TempDir() + "/test.db"
	if err := database.InitDatabase(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return library.NewStore(database.DB), func() { database.Close() }
}

func newBook(title, googleID string, added time.Time) *models.Book {
	return &models.Book{
		ID:            uuid.NewString(),
		GoogleBooksID: googleID,
		Title:         title,
		Authors:       "Some Author",
		Status:        models.StatusReading,
		DateAdded:     added,
	}
}

func TestStore_AddAndGet(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	pages := 320
	rating := 4.1
	book := newBook("Dune", "vol-1", time.Now().UTC())
	book.PageCount = &pages
	book.AverageRating = &rating
	book.PublishedYear = "1965"
	book.Language = "en"
	book.Categories = "Fiction, Science Fiction"

	if err := store.Add(book); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := store.GetByID(book.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Dune" || got.GoogleBooksID != "vol-1" {
		t.Errorf("got %+v", got)
	}
	if got.PageCount == nil || *got.PageCount != 320 {
		t.Errorf("page_count = %v, want 320", got.PageCount)
	}
	if got.AverageRating == nil || *got.AverageRating != 4.1 {
		t.Errorf("average_rating = %v, want 4.1", got.AverageRating)
	}
	if got.DateFinished != nil {
		t.Errorf("date_finished = %v, want nil for a reading record", got.DateFinished)
	}
}

func TestStore_DuplicateCatalogID(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	if err := store.Add(newBook("First", "vol-dup", time.Now().UTC())); err != nil {
		t.Fatalf("add: %v", err)
	}

	err := store.Add(newBook("Second", "vol-dup", time.Now().UTC()))
	if !errors.Is(err, library.ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}

	all, err := store.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("library size = %d, want 1 (duplicate import must not grow it)", len(all))
	}
}

func TestStore_ListByStatusOrdering(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	older := newBook("older", "vol-a", base)
	newer := newBook("newer", "vol-b", base.AddDate(0, 0, 10))
	for _, b := range []*models.Book{older, newer} {
		if err := store.Add(b); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	reading, err := store.ListByStatus(models.StatusReading)
	if err != nil {
		t.Fatalf("list reading: %v", err)
	}
	if len(reading) != 2 || reading[0].Title != "newer" {
		t.Errorf("reading order wrong: %v", titles(reading))
	}

	// Finish them in reverse order: "older" finishes later so it should lead
	// the finished list.
	if err := store.MarkFinished(newer.ID, base.AddDate(0, 1, 0)); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := store.MarkFinished(older.ID, base.AddDate(0, 2, 0)); err != nil {
		t.Fatalf("finish: %v", err)
	}

	finished, err := store.ListByStatus(models.StatusFinished)
	if err != nil {
		t.Fatalf("list finished: %v", err)
	}
	if len(finished) != 2 || finished[0].Title != "older" {
		t.Errorf("finished order wrong: %v", titles(finished))
	}
	if finished[0].DateFinished == nil {
		t.Error("finished record missing date_finished")
	}
}

func TestStore_MarkFinishedNotFound(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	err := store.MarkFinished("no-such-id", time.Now().UTC())
	if !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	book := newBook("Doomed", "vol-del", time.Now().UTC())
	if err := store.Add(book); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := store.Delete(book.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(book.ID); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("want ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(book.ID); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestStore_GetByGoogleBooksID(t *testing.T) {
	store, cleanup := setupStore(t)
	defer cleanup()

	book := newBook("Found", "vol-find", time.Now().UTC())
	if err := store.Add(book); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := store.GetByGoogleBooksID("vol-find")
	if err != nil {
		t.Fatalf("get by catalog id: %v", err)
	}
	if got.ID != book.ID {
		t.Errorf("got id %s, want %s", got.ID, book.ID)
	}

	if _, err := store.GetByGoogleBooksID("vol-absent"); !errors.Is(err, library.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func titles(books []models.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}
