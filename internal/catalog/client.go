package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bookworm-labs/alexandria/pkg/models"
)

// ErrNotFound is returned when the catalog has no entry for the requested id.
var ErrNotFound = errors.New("catalog: volume not found")

const searchPageSize = 10

// Source is the external book catalog boundary. Lookups are single blocking
// calls with no retry; an unavailable upstream degrades to an empty result
// rather than a transport error.
type Source interface {
	Search(ctx context.Context, query string) ([]models.CatalogBook, error)
	GetByID(ctx context.Context, googleBooksID string) (*models.CatalogBook, error)
}

// GoogleBooksSource queries the Google Books volumes API.
type GoogleBooksSource struct {
	BaseURL string
	Client  *http.Client
}

func NewGoogleBooksSource(baseURL string) *GoogleBooksSource {
	return &GoogleBooksSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type volumeInfo struct {
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	ImageLinks *struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
	Description   string   `json:"description"`
	PageCount     *int     `json:"pageCount"`
	Categories    []string `json:"categories"`
	PublishedDate string   `json:"publishedDate"`
	Language      string   `json:"language"`
	AverageRating *float64 `json:"averageRating"`
}

type volumeRes struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type searchRes struct {
	TotalItems int         `json:"totalItems"`
	Items      []volumeRes `json:"items"`
}

// Search returns up to ten normalized catalog summaries for a free-text query.
// Any non-200 response yields an empty slice.
func (s *GoogleBooksSource) Search(ctx context.Context, query string) ([]models.CatalogBook, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(searchPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build search request: %w", err)
	}

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: search request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return []models.CatalogBook{}, nil
	}

	var payload searchRes
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog: decode search response: %w", err)
	}

	results := make([]models.CatalogBook, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, normalizeVolume(item))
	}
	return results, nil
}

// GetByID retrieves a single catalog record. A non-200 response maps to
// ErrNotFound.
func (s *GoogleBooksSource) GetByID(ctx context.Context, googleBooksID string) (*models.CatalogBook, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+url.PathEscape(googleBooksID), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build volume request: %w", err)
	}

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: volume request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	var payload volumeRes
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog: decode volume response: %w", err)
	}

	book := normalizeVolume(payload)
	return &book, nil
}

// normalizeVolume flattens a Google Books volume into the canonical catalog
// shape: authors and categories comma-joined, published year reduced to the
// first four digits of the published date.
func normalizeVolume(v volumeRes) models.CatalogBook {
	info := v.VolumeInfo

	book := models.CatalogBook{
		GoogleBooksID: v.ID,
		Title:         info.Title,
		Authors:       strings.Join(info.Authors, ", "),
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    strings.Join(info.Categories, ", "),
		Language:      info.Language,
		AverageRating: info.AverageRating,
	}
	if info.ImageLinks != nil {
		book.Thumbnail = info.ImageLinks.Thumbnail
	}
	if len(info.PublishedDate) >= 4 {
		book.PublishedYear = info.PublishedDate[:4]
	}
	return book
}
