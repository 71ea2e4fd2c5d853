package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/St1cky1/item-service/internal/entity"
	"github.com/St1cky1/item-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type ItemHandler struct {
	itemService *usecase.ItemService
}

func NewItemHandler(itemService *usecase.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// ListItems - GET /api/items?category=&search=&page=&limit=
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.itemService.ListItems(r.Context(), entity.ListItemsQuery{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Page:     atoiOrZero(q.Get("page")),
		Limit:    atoiOrZero(q.Get("limit")),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success:    true,
		Data:       page.Items,
		Pagination: &page.Pagination,
	})
}

// создаем новый элемент
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := decodeJSON(r, &payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON") // 400
		return
	}

	req := payload.fields()
	item, err := h.itemService.CreateItem(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, item, "Item created successfully")
}

func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, item, "")
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := decodeJSON(r, &payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req := entity.UpdateItemRequest(payload.fields())

	item, err := h.itemService.UpdateItem(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, item, "Item updated successfully")
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemService.DeleteItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, item, "Item deleted successfully")
}

// BulkDeleteItems - POST /api/items/bulk-delete {"ids": [...]}
func (h *ItemHandler) BulkDeleteItems(w http.ResponseWriter, r *http.Request) {
	var req entity.BulkDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.IDs) == 0 {
		WriteError(w, http.StatusBadRequest, "Validation failed", "ids must be a non-empty array")
		return
	}

	result, err := h.itemService.BulkDeleteItems(r.Context(), req.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, result, strconv.Itoa(len(result.Deleted))+" item(s) deleted")
}

// atoiOrZero: нечисловое значение считается не переданным
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// itemPayload - тело POST/PUT/PATCH. name и category читаются как сырой JSON:
// значение не того типа отклоняется валидацией вместе с остальными нарушениями,
// а не общим "Invalid JSON".
type itemPayload struct {
	Name        json.RawMessage `json:"name"`
	Description *string         `json:"description"`
	Category    json.RawMessage `json:"category"`
	Completed   *bool           `json:"completed"`
	Priority    *string         `json:"priority"`
}

func (p itemPayload) fields() entity.CreateItemRequest {
	return entity.CreateItemRequest{
		Name:        rawString(p.Name),
		Description: p.Description,
		Category:    rawString(p.Category),
		Completed:   p.Completed,
		Priority:    p.Priority,
	}
}

// rawString: отсутствие или null -> nil, строка -> её значение,
// любой другой тип -> пустая строка, которую отвергнет валидация
func rawString(raw json.RawMessage) *string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = ""
	}
	return &s
}
