// internal/catalog/implementation.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"libracore/internal/store"
)

// service implements the Service interface.
type service struct {
	store store.Store
}

// NewService creates a new catalog service instance.
func NewService(st store.Store) Service {
	return &service{store: st}
}

// AddBook validates a new catalog entry and inserts it with all copies
// available.
func (s *service) AddBook(ctx context.Context, title, author, isbn string, totalCopies int) Result {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{Message: "Title is required."}
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return Result{Message: "Title must be less than 200 characters."}
	}

	author = strings.TrimSpace(author)
	if author == "" {
		return Result{Message: "Author is required."}
	}
	if utf8.RuneCountInString(author) > maxAuthorLen {
		return Result{Message: "Author must be less than 100 characters."}
	}

	// Length check only: the characters are not verified to be digits.
	if utf8.RuneCountInString(isbn) != isbnLength {
		return Result{Message: "ISBN must be exactly 13 digits."}
	}

	if totalCopies <= 0 {
		return Result{Message: "Total copies must be a positive integer."}
	}

	existing, err := s.store.GetBookByISBN(ctx, isbn)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Result{Message: "Database error occurred while adding the book."}
	}
	if existing != nil {
		return Result{Message: "A book with this ISBN already exists."}
	}

	if err := s.store.InsertBook(ctx, title, author, isbn, totalCopies, totalCopies); err != nil {
		return Result{Message: "Database error occurred while adding the book."}
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("Book %q has been successfully added to the catalog.", title),
	}
}

// Search returns the catalog entries matching term in the given field.
// Title and author match on case-insensitive substring, isbn on
// case-insensitive equality. Invalid input yields an empty result, not an
// error, and store order is preserved among matches.
func (s *service) Search(ctx context.Context, term, field string) []store.Book {
	term = strings.TrimSpace(term)
	if term == "" {
		return []store.Book{}
	}
	if field != FieldTitle && field != FieldAuthor && field != FieldISBN {
		return []store.Book{}
	}

	books, err := s.store.GetAllBooks(ctx)
	if err != nil {
		return []store.Book{}
	}

	term = strings.ToLower(term)
	results := []store.Book{}
	for _, b := range books {
		var matched bool
		switch field {
		case FieldTitle:
			matched = strings.Contains(strings.ToLower(b.Title), term)
		case FieldAuthor:
			matched = strings.Contains(strings.ToLower(b.Author), term)
		case FieldISBN:
			matched = strings.ToLower(b.ISBN) == term
		}
		if matched {
			results = append(results, b)
		}
	}
	return results
}
