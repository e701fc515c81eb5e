package models

import "time"

// ToDo represents a row in the todos table.
type ToDo struct {
	ID          int       `json:"id,omitempty"`
	OwnerID     int       `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDoRequest is the body of POST /todo/ and PUT /todo/:id. Every mutable
// field is bound on each request; an omitted done overwrites with false, it
// never preserves the stored value.
type ToDoRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=3,max=1000"`
	Priority    int    `json:"priority" binding:"required,gte=1,lte=5"`
	Done        bool   `json:"done"`
}
