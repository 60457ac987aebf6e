package catalog

import (
	"context"
	"strings"
	"testing"

	"libracore/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBookValidation(t *testing.T) {
	testCases := []struct {
		name        string
		title       string
		author      string
		isbn        string
		totalCopies int
		wantMessage string
	}{
		{"empty title", "", "Author", "9780000000001", 1, "Title is required."},
		{"whitespace title", "   ", "Author", "9780000000001", 1, "Title is required."},
		{"title too long", strings.Repeat("t", 201), "Author", "9780000000001", 1, "Title must be less than 200 characters."},
		{"empty author", "Title", "", "9780000000001", 1, "Author is required."},
		{"whitespace author", "Title", "  \t", "9780000000001", 1, "Author is required."},
		{"author too long", "Title", strings.Repeat("a", 101), "9780000000001", 1, "Author must be less than 100 characters."},
		{"isbn too short", "Title", "Author", "978000000000", 1, "ISBN must be exactly 13 digits."},
		{"isbn too long", "Title", "Author", "97800000000012", 1, "ISBN must be exactly 13 digits."},
		{"zero copies", "Title", "Author", "9780000000001", 0, "Total copies must be a positive integer."},
		{"negative copies", "Title", "Author", "9780000000001", -2, "Total copies must be a positive integer."},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemoryStore()
			svc := NewService(st)

			res := svc.AddBook(context.Background(), tt.title, tt.author, tt.isbn, tt.totalCopies)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)

			books, err := st.GetAllBooks(context.Background())
			require.NoError(t, err)
			assert.Empty(t, books)
		})
	}
}

// The ISBN check is length-only: 13 non-digit characters pass, despite the
// message's wording.
func TestAddBookISBNLengthOnly(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)

	res := svc.AddBook(context.Background(), "Title", "Author", "abcdefghijklm", 1)
	assert.True(t, res.Success)
}

func TestAddBookSuccess(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewService(st)

	res := svc.AddBook(ctx, "  The Go Programming Language  ", "Alan Donovan", "9780134190440", 3)
	require.True(t, res.Success)
	assert.Equal(t, `Book "The Go Programming Language" has been successfully added to the catalog.`, res.Message)

	book, err := st.GetBookByISBN(ctx, "9780134190440")
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", book.Title)
	assert.Equal(t, "Alan Donovan", book.Author)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)
}

func TestAddBookDuplicateISBN(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewService(st)

	require.True(t, svc.AddBook(ctx, "First", "Author", "9780134190440", 1).Success)

	res := svc.AddBook(ctx, "Second", "Other Author", "9780134190440", 2)
	assert.False(t, res.Success)
	assert.Equal(t, "A book with this ISBN already exists.", res.Message)
}

func TestAddBookWriteFailure(t *testing.T) {
	st := store.NewMemoryStore()
	st.SetFailWrites(true)
	svc := NewService(st)

	res := svc.AddBook(context.Background(), "Title", "Author", "9780000000001", 1)
	assert.False(t, res.Success)
	assert.Equal(t, "Database error occurred while adding the book.", res.Message)
}

func seedCatalog(t *testing.T, st *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.InsertBook(ctx, "The Go Programming Language", "Alan Donovan", "9780134190440", 3, 3))
	require.NoError(t, st.InsertBook(ctx, "Learning Go", "Jon Bodner", "9781492077213", 2, 2))
	require.NoError(t, st.InsertBook(ctx, "Clean Code", "Robert Martin", "978013235088X", 1, 1))
}

func TestSearchEmptyOrInvalid(t *testing.T) {
	st := store.NewMemoryStore()
	seedCatalog(t, st)
	svc := NewService(st)
	ctx := context.Background()

	assert.Empty(t, svc.Search(ctx, "", FieldTitle))
	assert.Empty(t, svc.Search(ctx, "   ", FieldTitle))
	assert.Empty(t, svc.Search(ctx, "go", "bogus"))
	assert.Empty(t, svc.Search(ctx, "go", ""))
}

func TestSearchTitleSubstringCaseInsensitive(t *testing.T) {
	st := store.NewMemoryStore()
	seedCatalog(t, st)
	svc := NewService(st)

	results := svc.Search(context.Background(), "GO", FieldTitle)
	require.Len(t, results, 2)
	// Store order preserved among matches.
	assert.Equal(t, "The Go Programming Language", results[0].Title)
	assert.Equal(t, "Learning Go", results[1].Title)
}

func TestSearchAuthor(t *testing.T) {
	st := store.NewMemoryStore()
	seedCatalog(t, st)
	svc := NewService(st)

	results := svc.Search(context.Background(), "martin", FieldAuthor)
	require.Len(t, results, 1)
	assert.Equal(t, "Clean Code", results[0].Title)
}

func TestSearchISBNExactMatch(t *testing.T) {
	st := store.NewMemoryStore()
	seedCatalog(t, st)
	svc := NewService(st)
	ctx := context.Background()

	// Exact only: a prefix is not enough.
	assert.Empty(t, svc.Search(ctx, "97801341904", FieldISBN))

	results := svc.Search(ctx, "9780134190440", FieldISBN)
	require.Len(t, results, 1)
	assert.Equal(t, "The Go Programming Language", results[0].Title)

	// Case-insensitive equality.
	results = svc.Search(ctx, "978013235088x", FieldISBN)
	require.Len(t, results, 1)
	assert.Equal(t, "Clean Code", results[0].Title)
}
