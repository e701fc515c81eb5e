package services

import (
	"context"

	"todo-api/internal/enrich"
	"todo-api/internal/models"
	"todo-api/internal/repositories"
	"todo-api/pkg/logger"
)

// TodoService handles owner-scoped todo operations. All authorization is
// expressed through the repository's owner-scoped queries, so a foreign id
// is indistinguishable from a missing one.
type TodoService struct {
	todoRepo *repositories.TodoRepository
	enricher *enrich.Enricher // nil when enrichment is disabled
}

// NewTodoService creates a new TodoService. enricher may be nil.
func NewTodoService(todoRepo *repositories.TodoRepository, enricher *enrich.Enricher) *TodoService {
	return &TodoService{todoRepo: todoRepo, enricher: enricher}
}

// Create stores a new todo for the owner. When enrichment is enabled the
// description is rewritten by the adapter; any adapter failure keeps the
// original description, it never fails the creation.
func (s *TodoService) Create(ctx context.Context, ownerID int, req models.ToDoRequest) (*models.ToDo, error) {
	description := req.Description
	if s.enricher != nil {
		enriched, err := s.enricher.Enrich(ctx, description)
		if err != nil {
			logger.Warn(ctx, "description enrichment failed, keeping original", "error", err)
		} else {
			description = enriched
		}
	}

	newTodo := &models.ToDo{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: description,
		Priority:    req.Priority,
		Done:        req.Done,
	}
	return s.todoRepo.Create(newTodo)
}

// List returns all todos owned by ownerID.
func (s *TodoService) List(ownerID int) ([]*models.ToDo, error) {
	return s.todoRepo.FindByOwner(ownerID)
}

// Get returns an owned todo by id.
func (s *TodoService) Get(id, ownerID int) (*models.ToDo, error) {
	return s.todoRepo.FindByIDAndOwner(id, ownerID)
}

// Update overwrites all mutable fields of an owned todo.
func (s *TodoService) Update(id, ownerID int, req models.ToDoRequest) error {
	updated := &models.ToDo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Done:        req.Done,
	}
	return s.todoRepo.Update(id, ownerID, updated)
}

// Delete removes an owned todo.
func (s *TodoService) Delete(id, ownerID int) error {
	return s.todoRepo.Delete(id, ownerID)
}
