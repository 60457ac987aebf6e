// internal/catalog/service.go
package catalog

import (
	"context"

	"libracore/internal/store"
)

// Service defines the interface for the catalog service.
type Service interface {
	AddBook(ctx context.Context, title, author, isbn string, totalCopies int) Result
	Search(ctx context.Context, term, field string) []store.Book
}
