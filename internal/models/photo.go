package models

import "time"

// Photo represents a photo record owned by a single user. The owner is
// fixed at creation and never reassigned.
type Photo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      int       `json:"user"`
}

// PhotoInput carries the writable fields of a photo. On update, Title and
// Description are always written as submitted; ImageURL replaces the
// stored reference only when non-empty.
type PhotoInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}
