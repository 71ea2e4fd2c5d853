package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/St1cky1/item-service/internal/entity"
)

type successResponse struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Ошибка записи ответа: %v", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, successResponse{Success: true, Data: data, Message: message})
}

// WriteError пишет ответ об ошибке в общем формате
func WriteError(w http.ResponseWriter, status int, message string, details ...string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message, Details: details})
}

// writeServiceError переводит ошибки ItemService в HTTP статусы
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *entity.ValidationError
	var nf *entity.NotFoundError

	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, "Validation failed", verr.Violations...) // 400
	case errors.As(err, &nf):
		WriteError(w, http.StatusNotFound, "Item not found") // 404
	default:
		log.Printf("❌ Внутренняя ошибка: %v", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error") // 500
	}
}

// decodeJSON - тело обязательно должно быть одним JSON объектом
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
