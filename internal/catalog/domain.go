// internal/catalog/domain.go
package catalog

// Validation bounds for new catalog entries.
const (
	maxTitleLen  = 200
	maxAuthorLen = 100
	isbnLength   = 13
)

// Search fields accepted by the catalog.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldISBN   = "isbn"
)

// Result is the outcome of a catalog operation. Business failures are
// reported here, never as errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
