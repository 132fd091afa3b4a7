package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookworm-labs/alexandria/pkg/models"
)

// MockSource implements Source for testing.
type MockSource struct {
	// Simulated catalog keyed by Google Books id.
	Volumes map[string]*models.CatalogBook

	// Control flags for error scenarios.
	ShouldFailSearch  bool
	ShouldFailGetByID bool
}

// NewMockSource creates a mock catalog with a couple of fixture volumes.
func NewMockSource() *MockSource {
	pages := 311
	rating := 4.2
	return &MockSource{
		Volumes: map[string]*models.CatalogBook{
			"vol-dune": {
				GoogleBooksID: "vol-dune",
				Title:         "Dune",
				Authors:       "Frank Herbert",
				PageCount:     &pages,
				Categories:    "Fiction, Science Fiction",
				PublishedYear: "1965",
				Language:      "en",
				AverageRating: &rating,
			},
			"vol-hobbit": {
				GoogleBooksID: "vol-hobbit",
				Title:         "The Hobbit",
				Authors:       "J.R.R. Tolkien",
				Categories:    "Fiction, Fantasy",
				PublishedYear: "1937",
				Language:      "en",
			},
		},
	}
}

func (m *MockSource) Search(ctx context.Context, query string) ([]models.CatalogBook, error) {
	if m.ShouldFailSearch {
		return nil, fmt.Errorf("mock search error")
	}

	results := []models.CatalogBook{}
	for _, v := range m.Volumes {
		if query == "" || strings.Contains(strings.ToLower(v.Title), strings.ToLower(query)) {
			results = append(results, *v)
		}
		if len(results) >= searchPageSize {
			break
		}
	}
	return results, nil
}

func (m *MockSource) GetByID(ctx context.Context, googleBooksID string) (*models.CatalogBook, error) {
	if m.ShouldFailGetByID {
		return nil, fmt.Errorf("mock lookup error")
	}
	v, ok := m.Volumes[googleBooksID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}
