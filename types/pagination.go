package types

import (
	"strconv"

	"bookshelf-api/models"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListParams holds the query parameters of a book listing request.
type ListParams struct {
	Search  string
	Page    int
	PerPage int
}

// ParseListParams reads search/page/per_page from the query string.
// Out-of-range values are clamped rather than rejected: page has a floor of
// 1 and per_page stays within [1, MaxPerPage]. Non-numeric values fall back
// to the defaults.
func ParseListParams(c *gin.Context) ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return ListParams{
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	}
}

// BookListResponse is the paginated listing payload.
type BookListResponse struct {
	Books   []*models.Book `json:"books"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Pages   int            `json:"pages"`
}

// NewBookListResponse assembles the listing payload. Pages is the ceiling of
// total/per_page; total counts all filtered rows, not just the current page.
func NewBookListResponse(books []*models.Book, total int, params ListParams) BookListResponse {
	if books == nil {
		books = []*models.Book{}
	}
	return BookListResponse{
		Books:   books,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
		Pages:   (total + params.PerPage - 1) / params.PerPage,
	}
}
