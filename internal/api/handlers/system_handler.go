package handlers

import (
	"net/http"
	"time"

	"github.com/St1cky1/item-service/internal/usecase"
)

type SystemHandler struct {
	itemService *usecase.ItemService
	startedAt   time.Time
}

func NewSystemHandler(itemService *usecase.ItemService) *SystemHandler {
	return &SystemHandler{
		itemService: itemService,
		startedAt:   time.Now(),
	}
}

type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var endpoints = []endpointDoc{
	{http.MethodGet, "/health", "Health check"},
	{http.MethodGet, "/api/docs", "API documentation"},
	{http.MethodGet, "/api/categories", "List allowed categories"},
	{http.MethodGet, "/api/stats", "Item statistics"},
	{http.MethodGet, "/api/items", "List items (category, search, page, limit)"},
	{http.MethodPost, "/api/items", "Create item"},
	{http.MethodGet, "/api/items/{id}", "Get item by id"},
	{http.MethodPut, "/api/items/{id}", "Update item (partial merge)"},
	{http.MethodDelete, "/api/items/{id}", "Delete item"},
	{http.MethodPost, "/api/items/bulk-delete", "Delete several items"},
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Docs - GET / и GET /api/docs
func (h *SystemHandler) Docs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Item REST API",
		"version":   "1.0.0",
		"endpoints": endpoints,
	})
}

func (h *SystemHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.itemService.ListCategories(), "")
}

func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.itemService.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, stats, "")
}
