package handlers

import (
	"sort"
	"strings"
	"time"

	"bookshelf-api/models"
	"bookshelf-api/repository"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret-test-secret-test-secret!"

// fakeUsersStore is an in-memory UsersStore mirroring the Postgres
// repository's contract, including the unique-username conflict.
type fakeUsersStore struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUsersStore() *fakeUsersStore {
	return &fakeUsersStore{users: make(map[string]*models.User), nextID: 1}
}

func (s *fakeUsersStore) CreateUser(username, passwordHash string) (*models.User, error) {
	if _, ok := s.users[username]; ok {
		return nil, repository.ErrUsernameTaken
	}
	user := &models.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.users[username] = user
	return user, nil
}

func (s *fakeUsersStore) GetUserByUsername(username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return user, nil
}

// fakeBooksStore is an in-memory BooksStore. Search is case-insensitive
// substring on title or author, listing order is ascending id, matching the
// ILIKE + ORDER BY id queries of the real repository.
type fakeBooksStore struct {
	books  map[int]*models.Book
	nextID int
}

func newFakeBooksStore() *fakeBooksStore {
	return &fakeBooksStore{books: make(map[int]*models.Book), nextID: 1}
}

func (s *fakeBooksStore) CreateBook(title, author, description string, publishedDate models.Date) (*models.Book, error) {
	book := &models.Book{
		ID:            s.nextID,
		Title:         title,
		Author:        author,
		Description:   description,
		PublishedDate: publishedDate,
	}
	s.nextID++
	s.books[book.ID] = book
	return book, nil
}

func (s *fakeBooksStore) GetBookByID(id int) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	return book, nil
}

func (s *fakeBooksStore) ListBooks(search string, page, perPage int) ([]*models.Book, int, error) {
	var matched []*models.Book
	needle := strings.ToLower(search)
	for _, book := range s.books {
		if search == "" ||
			strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) {
			matched = append(matched, book)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	offset := (page - 1) * perPage
	if offset >= total {
		return []*models.Book{}, total, nil
	}
	end := offset + perPage
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *fakeBooksStore) UpdateBook(id int, upd models.BookUpdate) (bool, error) {
	book, ok := s.books[id]
	if !ok {
		return false, nil
	}
	if upd.Title != nil {
		book.Title = *upd.Title
	}
	if upd.Author != nil {
		book.Author = *upd.Author
	}
	if upd.Description != nil {
		book.Description = *upd.Description
	}
	if upd.PublishedDate != nil {
		book.PublishedDate = *upd.PublishedDate
	}
	return true, nil
}

func (s *fakeBooksStore) DeleteBook(id int) (bool, error) {
	if _, ok := s.books[id]; !ok {
		return false, nil
	}
	delete(s.books, id)
	return true, nil
}

// newTestRouter wires handlers the same way main does, minus rate limiting
// and access logs.
func newTestRouter(users *fakeUsersStore, books *fakeBooksStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authHandler := NewAuthHandler(users, testSecret, time.Hour)
	booksHandler := NewBooksHandler(books)

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	auth := r.Group("/", AuthMiddleware(testSecret))
	{
		auth.POST("/books", booksHandler.CreateBook)
		auth.GET("/books", booksHandler.GetBooks)
		auth.GET("/books/:id", booksHandler.GetBook)
		auth.PUT("/books/:id", booksHandler.UpdateBook)
		auth.DELETE("/books/:id", booksHandler.DeleteBook)
	}
	return r
}
