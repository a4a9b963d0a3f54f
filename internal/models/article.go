package models

import "time"

// Article represents a single news article.
type Article struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"` // Author handle, optional
	Title        string    `json:"title"`
	Image        string    `json:"image,omitempty"` // URL or base64 payload
	Category     string    `json:"category"`
	Content      string    `json:"content"`
	CategoryNews string    `json:"category_news"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ArticleUpdate carries the mutable fields of an article. Nil pointers
// leave the stored value untouched.
type ArticleUpdate struct {
	Username     *string `json:"username"`
	Title        *string `json:"title"`
	Image        *string `json:"image"`
	Category     *string `json:"category"`
	Content      *string `json:"content"`
	CategoryNews *string `json:"category_news"`
}
