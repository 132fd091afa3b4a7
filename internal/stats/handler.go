package stats

import (
	"net/http"
	"time"

	"github.com/bookworm-labs/alexandria/internal/library"
	"github.com/bookworm-labs/alexandria/pkg/logger"
	"github.com/bookworm-labs/alexandria/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Handler serves the statistics dashboard. Every request recomputes from a
// full scan of the store; the library is one user's, small enough that
// caching would buy nothing.
type Handler struct {
	store *library.Store
	log   *logger.Logger
}

func NewHandler(store *library.Store) *Handler {
	return &Handler{
		store: store,
		log:   logger.GetLogger().WithContext("component", "stats"),
	}
}

func (h *Handler) GetStats(c *gin.Context) {
	metrics.IncrementStatsRequests()

	all, err := h.store.ListAll()
	if err != nil {
		h.log.Error("stats_scan_failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, Compute(all, time.Now().UTC()))
}
