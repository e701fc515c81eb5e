// Package testutil provides the integration test harness. Tests that need a
// database are skipped unless TEST_DB_HOST is set.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"todo-api/internal/config"
	"todo-api/internal/models"
	"todo-api/internal/routes"
)

const createUsersTableSQL = `
	CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		hashed_password VARCHAR(255) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		role VARCHAR(50) NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	);`

const createTodosTableSQL = `
	CREATE TABLE IF NOT EXISTS todos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		owner_id INT NOT NULL,
		title VARCHAR(255) NOT NULL,
		description VARCHAR(1000) NOT NULL,
		priority INT NOT NULL,
		done BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
	);`

// TestConfig returns the config used by integration tests. Enrichment stays
// disabled so tests never call out to an external API.
func TestConfig() *config.Config {
	return &config.Config{
		HTTPPort:      "8080",
		JWTSecret:     "integration-test-secret",
		TokenLifetime: time.Hour,
		AllowOrigins:  []string{"http://localhost:3000"},
	}
}

// SetupTestDB connects to the TEST_DB_* MySQL instance, recreates the schema
// and returns the database handle plus a fully wired router. The calling
// test is skipped when TEST_DB_HOST is not set.
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine) {
	t.Helper()

	_ = godotenv.Load("../../.env")
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set; skipping database integration test")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		os.Getenv("TEST_DB_USER"),
		os.Getenv("TEST_DB_PASS"),
		os.Getenv("TEST_DB_HOST"),
		os.Getenv("TEST_DB_PORT"),
		os.Getenv("TEST_DB_NAME"),
	)

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err, "Failed to open database connection")
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}

	_, err = db.Exec(createUsersTableSQL)
	require.NoError(t, err, "Failed to create users table")
	_, err = db.Exec(createTodosTableSQL)
	require.NoError(t, err, "Failed to create todos table")

	// Truncate in FK order so every test starts clean.
	_, _ = db.Exec("SET FOREIGN_KEY_CHECKS=0;")
	_, _ = db.Exec("TRUNCATE TABLE todos")
	_, _ = db.Exec("TRUNCATE TABLE users")
	_, _ = db.Exec("SET FOREIGN_KEY_CHECKS=1;")

	gin.SetMode(gin.TestMode)
	router := routes.SetupRouter(TestConfig(), db)
	return db, router
}

// RegisterUser registers a user through the API and fails the test on any
// non-201 response.
func RegisterUser(t *testing.T, router *gin.Engine, username, password string) {
	t.Helper()

	body, _ := json.Marshal(models.UserRegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  password,
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code, "Failed to register %s: %s", username, resp.Body.String())
}

// LoginAndGetToken obtains a bearer token through POST /auth/token.
func LoginAndGetToken(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, "Failed to login %s: %s", username, resp.Body.String())

	var tokenResp models.TokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tokenResp))
	require.NotEmpty(t, tokenResp.AccessToken)
	return tokenResp.AccessToken
}

// CreateTestTodo creates a todo through the API and returns the response body.
func CreateTestTodo(t *testing.T, router *gin.Engine, token string, reqBody models.ToDoRequest) *models.ToDo {
	t.Helper()

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/todo/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code, "Failed to create todo: %s", resp.Body.String())

	var created models.ToDo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	return &created
}
