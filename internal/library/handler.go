package library

import (
	"errors"
	"net/http"
	"time"

	"github.com/bookworm-labs/alexandria/internal/catalog"
	"github.com/bookworm-labs/alexandria/internal/notify"
	"github.com/bookworm-labs/alexandria/pkg/logger"
	"github.com/bookworm-labs/alexandria/pkg/metrics"
	"github.com/bookworm-labs/alexandria/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the library over HTTP.
type Handler struct {
	store  *Store
	source catalog.Source
	hub    *notify.Hub
	log    *logger.Logger
}

func NewHandler(store *Store, source catalog.Source, hub *notify.Hub) *Handler {
	return &Handler{
		store:  store,
		source: source,
		hub:    hub,
		log:    logger.GetLogger().WithContext("component", "library"),
	}
}

// GetLibrary returns the full library grouped by status.
func (h *Handler) GetLibrary(c *gin.Context) {
	reading, err := h.store.ListByStatus(models.StatusReading)
	if err != nil {
		h.log.Error("list_reading_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	finished, err := h.store.ListByStatus(models.StatusFinished)
	if err != nil {
		h.log.Error("list_finished_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, models.Library{Reading: reading, Finished: finished})
}

// GetBook returns one record's detail.
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.store.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		h.log.Error("get_book_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// SearchCatalog proxies a free-text query to the external catalog. An
// unavailable upstream degrades to an empty result set.
func (h *Handler) SearchCatalog(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"results": []models.CatalogBook{}, "count": 0})
		return
	}

	results, err := h.source.Search(c.Request.Context(), query)
	if err != nil {
		metrics.IncrementCatalogErrors()
		h.log.Warn("catalog_search_failed", "query", query, "error", err.Error())
		results = []models.CatalogBook{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// ImportBook adds a catalog entry to the library with status "reading".
// Importing an id that is already present is a silent no-op.
func (h *Handler) ImportBook(c *gin.Context) {
	googleBooksID := c.Param("google_books_id")
	if googleBooksID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catalog id is required"})
		return
	}

	if existing, err := h.store.GetByGoogleBooksID(googleBooksID); err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Book already in library", "id": existing.ID})
		return
	} else if !errors.Is(err, ErrNotFound) {
		h.log.Error("import_lookup_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	details, err := h.source.GetByID(c.Request.Context(), googleBooksID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found in catalog"})
			return
		}
		metrics.IncrementCatalogErrors()
		h.log.Warn("catalog_lookup_failed", "google_books_id", googleBooksID, "error", err.Error())
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found in catalog"})
		return
	}

	book := &models.Book{
		ID:            uuid.NewString(),
		GoogleBooksID: details.GoogleBooksID,
		Title:         details.Title,
		Authors:       details.Authors,
		Thumbnail:     details.Thumbnail,
		Description:   details.Description,
		PageCount:     details.PageCount,
		Categories:    details.Categories,
		Status:        models.StatusReading,
		DateAdded:     time.Now().UTC(),
		PublishedYear: details.PublishedYear,
		Language:      details.Language,
		AverageRating: details.AverageRating,
	}

	if err := h.store.Add(book); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// Raced with a concurrent import of the same volume.
			c.JSON(http.StatusOK, gin.H{"message": "Book already in library"})
			return
		}
		h.log.Error("import_insert_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add book"})
		return
	}

	metrics.IncrementImports()
	h.hub.BroadcastEvent(notify.Event{Type: notify.EventBookAdded, BookID: book.ID, Title: book.Title})
	h.log.Info("book_imported", "id", book.ID, "title", book.Title)

	c.JSON(http.StatusCreated, book)
}

// FinishBook marks a record finished, stamping the completion time.
func (h *Handler) FinishBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.MarkFinished(id, time.Now().UTC()); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		h.log.Error("finish_failed", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	metrics.IncrementFinishes()
	h.hub.BroadcastEvent(notify.Event{Type: notify.EventBookFinished, BookID: id})
	h.log.Info("book_finished", "id", id)

	c.JSON(http.StatusOK, gin.H{"message": "Book marked as finished"})
}

// DeleteBook removes a record from the library.
func (h *Handler) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		h.log.Error("delete_failed", "id", id, "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}

	h.hub.BroadcastEvent(notify.Event{Type: notify.EventBookDeleted, BookID: id})
	h.log.Info("book_deleted", "id", id)

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}
