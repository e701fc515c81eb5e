package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-api/internal/models"
)

// ErrTodoNotFound covers both an absent id and an id owned by someone else,
// so a non-owner cannot tell the two apart.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository performs database operations on todos. Every query is
// scoped by owner_id.
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// Create inserts a new todo for the given owner.
func (r *TodoRepository) Create(t *models.ToDo) (*models.ToDo, error) {
	query := "INSERT INTO todos (owner_id, title, description, priority, done) VALUES (?, ?, ?, ?, ?)"
	result, err := r.DB.Exec(query, t.OwnerID, t.Title, t.Description, t.Priority, t.Done)
	if err != nil {
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = int(id)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	return t, nil
}

// FindByOwner returns all todos owned by ownerID, newest first.
func (r *TodoRepository) FindByOwner(ownerID int) ([]*models.ToDo, error) {
	query := `SELECT id, owner_id, title, description, priority, done, created_at, updated_at
		FROM todos WHERE owner_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := []*models.ToDo{}
	for rows.Next() {
		var t models.ToDo
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}
	return todos, nil
}

// FindByIDAndOwner returns the todo with the given id if ownerID owns it.
func (r *TodoRepository) FindByIDAndOwner(id, ownerID int) (*models.ToDo, error) {
	query := `SELECT id, owner_id, title, description, priority, done, created_at, updated_at
		FROM todos WHERE id = ? AND owner_id = ?`

	var t models.ToDo
	err := r.DB.QueryRow(query, id, ownerID).Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Priority, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return &t, nil
}

// Update overwrites title, description, priority and done of an owned todo.
// The row is located first so that an unchanged payload still succeeds
// (MySQL reports zero affected rows for no-op updates).
func (r *TodoRepository) Update(id, ownerID int, t *models.ToDo) error {
	if _, err := r.FindByIDAndOwner(id, ownerID); err != nil {
		return err
	}

	query := "UPDATE todos SET title = ?, description = ?, priority = ?, done = ? WHERE id = ? AND owner_id = ?"
	if _, err := r.DB.Exec(query, t.Title, t.Description, t.Priority, t.Done, id, ownerID); err != nil {
		return fmt.Errorf("could not update todo: %w", err)
	}
	return nil
}

// Delete removes an owned todo.
func (r *TodoRepository) Delete(id, ownerID int) error {
	result, err := r.DB.Exec("DELETE FROM todos WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
