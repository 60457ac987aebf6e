// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleAddBook adds a new book to the catalog.
func (h *Handler) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Author      string `json:"author"`
		ISBN        string `json:"isbn"`
		TotalCopies int    `json:"total_copies"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.service.AddBook(r.Context(), req.Title, req.Author, req.ISBN, req.TotalCopies)
	w.Header().Set("Content-Type", "application/json")
	if res.Success {
		w.WriteHeader(http.StatusCreated)
	} else {
		w.WriteHeader(http.StatusBadRequest)
	}
	json.NewEncoder(w).Encode(res)
}

// HandleSearch searches the catalog. Invalid input yields an empty list.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	field := r.URL.Query().Get("type")

	books := h.service.Search(r.Context(), term, field)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(books)
}
