package handlers

import (
	"net/http"
	"strconv"

	"bookshelf-api/models"
	"bookshelf-api/types"

	"github.com/gin-gonic/gin"
)

// BooksStore is the slice of the books repository the book handlers need.
type BooksStore interface {
	CreateBook(title, author, description string, publishedDate models.Date) (*models.Book, error)
	GetBookByID(id int) (*models.Book, error)
	ListBooks(search string, page, perPage int) ([]*models.Book, int, error)
	UpdateBook(id int, upd models.BookUpdate) (bool, error)
	DeleteBook(id int) (bool, error)
}

type BooksHandler struct {
	books BooksStore
}

func NewBooksHandler(books BooksStore) *BooksHandler {
	return &BooksHandler{books: books}
}

func (h *BooksHandler) CreateBook(c *gin.Context) {
	var req struct {
		Title         string `json:"title"`
		Author        string `json:"author"`
		Description   string `json:"description"`
		PublishedDate string `json:"published_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	date, err := models.ParseDate(req.PublishedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if _, err := h.books.CreateBook(req.Title, req.Author, req.Description, date); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add book"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book added successfully"})
}

func (h *BooksHandler) GetBooks(c *gin.Context) {
	params := types.ParseListParams(c)
	books, total, err := h.books.ListBooks(params.Search, params.Page, params.PerPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list books"})
		return
	}
	c.JSON(http.StatusOK, types.NewBookListResponse(books, total, params))
}

func (h *BooksHandler) GetBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}
	book, err := h.books.GetBookByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get book"})
		return
	}
	if book == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook applies a partial update: only keys present in the body replace
// stored values. published_date goes through the same strict parse as create.
func (h *BooksHandler) UpdateBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}
	var req struct {
		Title         *string `json:"title"`
		Author        *string `json:"author"`
		Description   *string `json:"description"`
		PublishedDate *string `json:"published_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	upd := models.BookUpdate{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
	}
	if req.PublishedDate != nil {
		date, err := models.ParseDate(*req.PublishedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		upd.PublishedDate = &date
	}
	updated, err := h.books.UpdateBook(id, upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update book"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Book updated!"})
}

func (h *BooksHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ID"})
		return
	}
	deleted, err := h.books.DeleteBook(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete book"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Book deleted!"})
}
