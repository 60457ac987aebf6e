// internal/store/memory.go
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used in development mode and in tests.
// It serializes individual operations with a mutex but, like the real
// database layer, provides no isolation across operations.
type MemoryStore struct {
	mu         sync.Mutex
	nextID     int64
	books      []*Book
	records    []*borrowRecord
	failWrites bool
}

type borrowRecord struct {
	patronID   string
	bookID     int64
	borrowDate time.Time
	dueDate    time.Time
	returnDate *time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// SetFailWrites makes every subsequent write operation fail. Test hook for
// the database-error paths.
func (m *MemoryStore) SetFailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

var errWriteFailed = errors.New("simulated write failure")

func (m *MemoryStore) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ISBN == isbn {
			copied := *b
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetAllBooks(ctx context.Context) ([]Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := make([]Book, 0, len(m.books))
	for _, b := range m.books {
		books = append(books, *b)
	}
	return books, nil
}

func (m *MemoryStore) InsertBook(ctx context.Context, title, author, isbn string, total, available int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errWriteFailed
	}
	m.books = append(m.books, &Book{
		ID:              m.nextID,
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     total,
		AvailableCopies: available,
	})
	m.nextID++
	return nil
}

func (m *MemoryStore) UpdateBookAvailability(ctx context.Context, id int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errWriteFailed
	}
	for _, b := range m.books {
		if b.ID == id {
			if b.AvailableCopies+delta < 0 {
				return errors.New("available copies cannot go negative")
			}
			b.AvailableCopies += delta
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) GetPatronBorrowCount(ctx context.Context, patronID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, r := range m.records {
		if r.patronID == patronID && r.returnDate == nil {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]BorrowedBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	borrowed := []BorrowedBook{}
	for _, r := range m.records {
		if r.patronID != patronID || r.returnDate != nil {
			continue
		}
		entry := BorrowedBook{
			BookID:     r.bookID,
			BorrowDate: r.borrowDate,
			DueDate:    r.dueDate,
		}
		for _, b := range m.books {
			if b.ID == r.bookID {
				entry.Title = b.Title
				break
			}
		}
		borrowed = append(borrowed, entry)
	}
	return borrowed, nil
}

func (m *MemoryStore) InsertBorrowRecord(ctx context.Context, patronID string, bookID int64, borrowDate, dueDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errWriteFailed
	}
	m.records = append(m.records, &borrowRecord{
		patronID:   patronID,
		bookID:     bookID,
		borrowDate: borrowDate,
		dueDate:    dueDate,
	})
	return nil
}

// UpdateBorrowRecordReturnDate closes the oldest open record for the
// patron/book pair. First match wins when duplicates exist.
func (m *MemoryStore) UpdateBorrowRecordReturnDate(ctx context.Context, patronID string, bookID int64, returnDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errWriteFailed
	}
	for _, r := range m.records {
		if r.patronID == patronID && r.bookID == bookID && r.returnDate == nil {
			when := returnDate
			r.returnDate = &when
			return nil
		}
	}
	return ErrNotFound
}
