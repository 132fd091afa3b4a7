package metrics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"imports_total":        GetImports(),
		"finishes_total":       GetFinishes(),
		"stats_requests_total": GetStatsRequests(),
		"catalog_errors_total": GetCatalogErrors(),
		"active_connections":   GetActiveConnections(),
	})
}
