package repository

import (
	"database/sql"

	"bookshelf-api/models"
)

type BooksRepository struct {
	db *sql.DB
}

func NewBooksRepository(db *sql.DB) *BooksRepository {
	return &BooksRepository{db: db}
}

func (r *BooksRepository) CreateBook(title, author, description string, publishedDate models.Date) (*models.Book, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO books (title, author, description, published_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		title, author, description, publishedDate).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetBookByID(id)
}

func (r *BooksRepository) GetBookByID(id int) (*models.Book, error) {
	var book models.Book
	var description sql.NullString
	err := r.db.QueryRow(`
		SELECT id, title, author, description, published_date
		FROM books
		WHERE id = $1`, id).Scan(
		&book.ID, &book.Title, &book.Author, &description, &book.PublishedDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	book.Description = description.String
	return &book, nil
}

// ListBooks returns one page of books plus the unpaginated count of rows
// matching the search. An empty search matches everything. A page past the
// end yields an empty slice, never an error. The count comes from a window
// function in the same statement as the page, so total always agrees with
// the rows returned even under concurrent writes.
func (r *BooksRepository) ListBooks(search string, page, perPage int) ([]*models.Book, int, error) {
	offset := (page - 1) * perPage
	pattern := "%" + search + "%"

	rows, err := r.db.Query(`
		SELECT id, title, author, description, published_date,
		       COUNT(*) OVER () AS total
		FROM books
		WHERE $1 = '' OR title ILIKE $2 OR author ILIKE $2
		ORDER BY id
		LIMIT $3 OFFSET $4`, search, pattern, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := []*models.Book{}
	var total int
	for rows.Next() {
		var book models.Book
		var description sql.NullString
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&description, &book.PublishedDate, &total); err != nil {
			return nil, 0, err
		}
		book.Description = description.String
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// An empty page carries no window-function rows; the filtered count
	// still has to be reported for page-past-the-end requests.
	if len(books) == 0 {
		err = r.db.QueryRow(`
			SELECT COUNT(*) FROM books
			WHERE $1 = '' OR title ILIKE $2 OR author ILIKE $2`,
			search, pattern).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
	}

	return books, total, nil
}

// UpdateBook applies a partial update; nil fields keep the stored value.
// Returns false when no book with the given id exists.
func (r *BooksRepository) UpdateBook(id int, upd models.BookUpdate) (bool, error) {
	var date interface{}
	if upd.PublishedDate != nil {
		date = *upd.PublishedDate
	}
	res, err := r.db.Exec(`
		UPDATE books SET
			title = COALESCE($1, title),
			author = COALESCE($2, author),
			description = COALESCE($3, description),
			published_date = COALESCE($4, published_date)
		WHERE id = $5`,
		upd.Title, upd.Author, upd.Description, date, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BooksRepository) DeleteBook(id int) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
