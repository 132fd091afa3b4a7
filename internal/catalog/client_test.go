package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookworm-labs/alexandria/internal/catalog"
)

const searchPayload = `{
  "totalItems": 2,
  "items": [
    {
      "id": "vol-1",
      "volumeInfo": {
        "title": "Dune",
        "authors": ["Frank Herbert"],
        "imageLinks": {"thumbnail": "http://img.example/dune.jpg"},
        "description": "Desert planet",
        "pageCount": 412,
        "categories": ["Fiction", "Science Fiction"],
        "publishedDate": "1965-08-01",
        "language": "en",
        "averageRating": 4.5
      }
    },
    {
      "id": "vol-2",
      "volumeInfo": {
        "title": "Untitled Draft",
        "publishedDate": "19"
      }
    }
  ]
}`

func TestSearch_NormalizesVolumes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "dune" {
			t.Errorf("q = %q, want dune", got)
		}
		if got := r.URL.Query().Get("maxResults"); got != "10" {
			t.Errorf("maxResults = %q, want 10", got)
		}
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	source := catalog.NewGoogleBooksSource(server.URL)
	results, err := source.Search(context.Background(), "dune")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	dune := results[0]
	if dune.GoogleBooksID != "vol-1" || dune.Title != "Dune" {
		t.Errorf("got %+v", dune)
	}
	if dune.Authors != "Frank Herbert" {
		t.Errorf("authors = %q", dune.Authors)
	}
	if dune.Categories != "Fiction, Science Fiction" {
		t.Errorf("categories = %q", dune.Categories)
	}
	if dune.PublishedYear != "1965" {
		t.Errorf("published_year = %q, want 1965", dune.PublishedYear)
	}
	if dune.PageCount == nil || *dune.PageCount != 412 {
		t.Errorf("page_count = %v, want 412", dune.PageCount)
	}
	if dune.AverageRating == nil || *dune.AverageRating != 4.5 {
		t.Errorf("average_rating = %v, want 4.5", dune.AverageRating)
	}

	// Sparse volume: short publishedDate yields no year, optionals stay nil.
	sparse := results[1]
	if sparse.PublishedYear != "" {
		t.Errorf("published_year = %q, want empty for 2-char date", sparse.PublishedYear)
	}
	if sparse.PageCount != nil || sparse.AverageRating != nil {
		t.Errorf("optionals should be nil: %+v", sparse)
	}
}

func TestSearch_NonOKDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	source := catalog.NewGoogleBooksSource(server.URL)
	results, err := source.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestGetByID_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vol-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{
          "id": "vol-1",
          "volumeInfo": {"title": "Dune", "authors": ["Frank Herbert"], "language": "en"}
        }`))
	}))
	defer server.Close()

	source := catalog.NewGoogleBooksSource(server.URL)
	book, err := source.GetByID(context.Background(), "vol-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if book.Title != "Dune" || book.Language != "en" {
		t.Errorf("got %+v", book)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source := catalog.NewGoogleBooksSource(server.URL)
	_, err := source.GetByID(context.Background(), "vol-missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
