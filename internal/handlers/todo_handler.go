package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todo-api/internal/models"
	"todo-api/internal/repositories"
	"todo-api/internal/services"
	"todo-api/pkg/logger"
)

// TodoHandler handles owner-scoped todo endpoints. The auth middleware puts
// the caller's user id into the context before any of these run.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// callerID extracts the authenticated user id from the Gin context. It
// writes the error response itself when the id is missing.
func callerID(c *gin.Context) (int, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return 0, false
	}
	userID, ok := userIDVal.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type in context"})
		return 0, false
	}
	return userID, true
}

func todoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return id, true
}

// ListTodosHandler handles GET /todo/read-all.
func (h *TodoHandler) ListTodosHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	todos, err := h.todoService.List(userID)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to fetch todos", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodoHandler handles GET /todo/:id.
func (h *TodoHandler) GetTodoHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	foundTodo, err := h.todoService.Get(id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ToDo not found."})
			return
		}
		logger.Error(c.Request.Context(), "failed to fetch todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo"})
		return
	}
	c.JSON(http.StatusOK, foundTodo)
}

// CreateTodoHandler handles POST /todo/.
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.ToDoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	createdTodo, err := h.todoService.Create(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to create todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create todo"})
		return
	}
	c.JSON(http.StatusCreated, createdTodo)
}

// UpdateTodoHandler handles PUT /todo/:id. All four mutable fields are
// overwritten on every call.
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req models.ToDoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.todoService.Update(id, userID, req); err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ToDo not found."})
			return
		}
		logger.Error(c.Request.Context(), "failed to update todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTodoHandler handles DELETE /todo/delete_todo/:id.
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ToDo not found."})
			return
		}
		logger.Error(c.Request.Context(), "failed to delete todo", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.Status(http.StatusNoContent)
}
