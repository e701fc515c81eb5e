// Package repositories provides the SQL access layer.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"

	"todo-api/internal/models"
)

var (
	ErrDuplicateUser = errors.New("duplicate username or email")
	ErrUserNotFound  = errors.New("user not found")
)

// HashPassword hashes the given password with bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedPassword), nil
}

// VerifyPassword compares a bcrypt hash against a plaintext password.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// UserRepository performs database operations on users.
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user. A unique-constraint violation on username or
// email is surfaced as ErrDuplicateUser.
func (r *UserRepository) Create(u *models.User) (*models.User, error) {
	query := `INSERT INTO users (username, email, first_name, last_name, hashed_password, is_active, role)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.DB.Exec(query, u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsActive, u.Role)
	if err != nil {
		// MySQL duplicate entry error code 1062
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("could not insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	u.ID = int(id)
	return u, nil
}

// FindByUsername looks up a user by username.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, email, first_name, last_name, hashed_password, is_active, role, created_at, updated_at
		FROM users WHERE username = ?`
	var u models.User
	err := r.DB.QueryRow(query, username).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.IsActive,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not query user: %w", err)
	}
	return &u, nil
}
