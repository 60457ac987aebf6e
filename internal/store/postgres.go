// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PostgresStore is the production Store, backed by the books and
// borrow_records tables.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("libracore/store"),
	}
}

// Migrate creates the tables if they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS books (
			id               BIGSERIAL PRIMARY KEY,
			title            TEXT NOT NULL,
			author           TEXT NOT NULL,
			isbn             TEXT NOT NULL UNIQUE,
			total_copies     INT NOT NULL,
			available_copies INT NOT NULL CHECK (available_copies >= 0)
		);
		CREATE TABLE IF NOT EXISTS borrow_records (
			id          BIGSERIAL PRIMARY KEY,
			patron_id   TEXT NOT NULL,
			book_id     BIGINT NOT NULL REFERENCES books(id),
			borrow_date TIMESTAMPTZ NOT NULL,
			due_date    TIMESTAMPTZ NOT NULL,
			return_date TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_borrow_records_patron
			ON borrow_records (patron_id) WHERE return_date IS NULL;
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_book_by_id",
		trace.WithAttributes(attribute.Int64("book.id", id)))
	defer span.End()

	book := &Book{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, isbn, total_copies, available_copies
		FROM books
		WHERE id = $1
	`, id).Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query book by id: %w", err)
	}
	return book, nil
}

func (s *PostgresStore) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_book_by_isbn")
	defer span.End()

	book := &Book{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, isbn, total_copies, available_copies
		FROM books
		WHERE isbn = $1
	`, isbn).Scan(&book.ID, &book.Title, &book.Author, &book.ISBN, &book.TotalCopies, &book.AvailableCopies)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query book by isbn: %w", err)
	}
	return book, nil
}

func (s *PostgresStore) GetAllBooks(ctx context.Context) ([]Book, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_all_books")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, isbn, total_copies, available_copies
		FROM books
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query all books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *PostgresStore) InsertBook(ctx context.Context, title, author, isbn string, total, available int) error {
	ctx, span := s.tracer.Start(ctx, "store.insert_book")
	defer span.End()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author, isbn, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5)
	`, title, author, isbn, total, available)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// UpdateBookAvailability applies delta to available_copies. The WHERE clause
// refuses updates that would take the count negative.
func (s *PostgresStore) UpdateBookAvailability(ctx context.Context, id int64, delta int) error {
	ctx, span := s.tracer.Start(ctx, "store.update_book_availability",
		trace.WithAttributes(
			attribute.Int64("book.id", id),
			attribute.Int("delta", delta),
		))
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET available_copies = available_copies + $1
		WHERE id = $2 AND available_copies + $1 >= 0
	`, delta, id)
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update availability: no matching book or count would go negative")
	}
	return nil
}

func (s *PostgresStore) GetPatronBorrowCount(ctx context.Context, patronID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_patron_borrow_count")
	defer span.End()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM borrow_records
		WHERE patron_id = $1 AND return_date IS NULL
	`, patronID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open borrows: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]BorrowedBook, error) {
	ctx, span := s.tracer.Start(ctx, "store.get_patron_borrowed_books")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT br.book_id, b.title, br.borrow_date, br.due_date
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		WHERE br.patron_id = $1 AND br.return_date IS NULL
		ORDER BY br.id
	`, patronID)
	if err != nil {
		return nil, fmt.Errorf("query borrowed books: %w", err)
	}
	defer rows.Close()

	borrowed := []BorrowedBook{}
	for rows.Next() {
		var bb BorrowedBook
		if err := rows.Scan(&bb.BookID, &bb.Title, &bb.BorrowDate, &bb.DueDate); err != nil {
			return nil, fmt.Errorf("scan borrowed book: %w", err)
		}
		borrowed = append(borrowed, bb)
	}
	return borrowed, rows.Err()
}

func (s *PostgresStore) InsertBorrowRecord(ctx context.Context, patronID string, bookID int64, borrowDate, dueDate time.Time) error {
	ctx, span := s.tracer.Start(ctx, "store.insert_borrow_record",
		trace.WithAttributes(attribute.Int64("book.id", bookID)))
	defer span.End()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO borrow_records (patron_id, book_id, borrow_date, due_date)
		VALUES ($1, $2, $3, $4)
	`, patronID, bookID, borrowDate, dueDate)
	if err != nil {
		return fmt.Errorf("insert borrow record: %w", err)
	}
	return nil
}

// UpdateBorrowRecordReturnDate closes the oldest open record for the
// patron/book pair.
func (s *PostgresStore) UpdateBorrowRecordReturnDate(ctx context.Context, patronID string, bookID int64, returnDate time.Time) error {
	ctx, span := s.tracer.Start(ctx, "store.update_borrow_record_return_date",
		trace.WithAttributes(attribute.Int64("book.id", bookID)))
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		UPDATE borrow_records
		SET return_date = $1
		WHERE id = (
			SELECT id FROM borrow_records
			WHERE patron_id = $2 AND book_id = $3 AND return_date IS NULL
			ORDER BY id
			LIMIT 1
		)
	`, returnDate, patronID, bookID)
	if err != nil {
		return fmt.Errorf("update return date: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update return date: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
