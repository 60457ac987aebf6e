// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatronID string `json:"patron_id"`
		BookID   int64  `json:"book_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.service.Borrow(r.Context(), req.PatronID, req.BookID)
	writeResult(w, res)
}

func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PatronID string `json:"patron_id"`
		BookID   int64  `json:"book_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.service.Return(r.Context(), req.PatronID, req.BookID)
	writeResult(w, res)
}

func (h *Handler) HandleFeeQuote(w http.ResponseWriter, r *http.Request) {
	patronID := chi.URLParam(r, "patronID")
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid book ID", http.StatusBadRequest)
		return
	}

	quote := h.service.FeeQuoteFor(r.Context(), patronID, bookID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

func (h *Handler) HandlePatronStatus(w http.ResponseWriter, r *http.Request) {
	patronID := chi.URLParam(r, "patronID")

	status, err := h.service.PatronStatus(r.Context(), patronID)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		if errors.Is(err, ErrInvalidPatronID) {
			w.WriteHeader(http.StatusBadRequest)
		} else {
			w.WriteHeader(http.StatusInternalServerError)
		}
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

func writeResult(w http.ResponseWriter, res Result) {
	w.Header().Set("Content-Type", "application/json")
	if !res.Success {
		w.WriteHeader(http.StatusBadRequest)
	}
	json.NewEncoder(w).Encode(res)
}
