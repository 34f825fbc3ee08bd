package models

type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	PublishedDate Date   `json:"published_date"`
}

// BookUpdate carries a partial update: nil fields keep their stored value.
type BookUpdate struct {
	Title         *string
	Author        *string
	Description   *string
	PublishedDate *Date
}
