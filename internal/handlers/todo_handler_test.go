package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"todo-api/internal/models"
	"todo-api/testutil"
)

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// Full lifecycle: register, login, create, list, delete, get-after-delete.
func TestTodoLifecycle(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.RegisterUser(t, router, "alice", "pw123456")
	token := testutil.LoginAndGetToken(t, router, "alice", "pw123456")

	created := testutil.CreateTestTodo(t, router, token, models.ToDoRequest{
		Title:       "Buy milk",
		Description: "Get milk from store",
		Priority:    2,
		Done:        false,
	})
	require.Equal(t, "Buy milk", created.Title)
	require.Equal(t, "Get milk from store", created.Description)
	require.Equal(t, 2, created.Priority)
	require.False(t, created.Done)

	resp := doJSON(t, router, http.MethodGet, "/todo/read-all", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var todos []*models.ToDo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	require.Equal(t, created.ID, todos[0].ID)
	require.Equal(t, created.OwnerID, todos[0].OwnerID)

	resp = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/todo/delete_todo/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = doJSON(t, router, http.MethodGet, fmt.Sprintf("/todo/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

// A non-owner sees 404, never 403, on every owner-scoped endpoint.
func TestOwnershipIsolation(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.RegisterUser(t, router, "alice", "pw123456")
	testutil.RegisterUser(t, router, "bob", "pw654321")
	aliceToken := testutil.LoginAndGetToken(t, router, "alice", "pw123456")
	bobToken := testutil.LoginAndGetToken(t, router, "bob", "pw654321")

	created := testutil.CreateTestTodo(t, router, aliceToken, models.ToDoRequest{
		Title:       "Alice task",
		Description: "Only alice may see this",
		Priority:    3,
	})

	update := models.ToDoRequest{Title: "Hijacked", Description: "Bob was here", Priority: 1, Done: true}

	t.Run("get returns 404", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/todo/%d", created.ID), bobToken, nil)
		require.Equal(t, http.StatusNotFound, resp.Code)
		require.NotContains(t, resp.Body.String(), "Only alice may see this")
	})
	t.Run("update returns 404", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPut, fmt.Sprintf("/todo/%d", created.ID), bobToken, update)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
	t.Run("delete returns 404", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/todo/delete_todo/%d", created.ID), bobToken, nil)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
	t.Run("list stays empty for bob", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, "/todo/read-all", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.Code)
		var todos []*models.ToDo
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &todos))
		require.Empty(t, todos)
	})

	// Alice's todo is untouched after bob's attempts.
	resp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/todo/%d", created.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var got models.ToDo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	require.Equal(t, "Alice task", got.Title)
}

func TestCreateTodo_Validation(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.RegisterUser(t, router, "alice", "pw123456")
	token := testutil.LoginAndGetToken(t, router, "alice", "pw123456")

	longOK := strings.Repeat("d", 1000)
	longBad := strings.Repeat("d", 1001)

	tests := []struct {
		name string
		req  models.ToDoRequest
		want int
	}{
		{"title length 2 rejected", models.ToDoRequest{Title: "ab", Description: "valid description", Priority: 3}, http.StatusUnprocessableEntity},
		{"title length 3 accepted", models.ToDoRequest{Title: "abc", Description: "valid description", Priority: 3}, http.StatusCreated},
		{"description length 2 rejected", models.ToDoRequest{Title: "valid", Description: "ab", Priority: 3}, http.StatusUnprocessableEntity},
		{"description length 3 accepted", models.ToDoRequest{Title: "valid", Description: "abc", Priority: 3}, http.StatusCreated},
		{"description length 1000 accepted", models.ToDoRequest{Title: "valid", Description: longOK, Priority: 3}, http.StatusCreated},
		{"description length 1001 rejected", models.ToDoRequest{Title: "valid", Description: longBad, Priority: 3}, http.StatusUnprocessableEntity},
		{"priority 0 rejected", models.ToDoRequest{Title: "valid", Description: "valid description", Priority: 0}, http.StatusUnprocessableEntity},
		{"priority 1 accepted", models.ToDoRequest{Title: "valid", Description: "valid description", Priority: 1}, http.StatusCreated},
		{"priority 5 accepted", models.ToDoRequest{Title: "valid", Description: "valid description", Priority: 5}, http.StatusCreated},
		{"priority 6 rejected", models.ToDoRequest{Title: "valid", Description: "valid description", Priority: 6}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, router, http.MethodPost, "/todo/", token, tt.req)
			require.Equal(t, tt.want, resp.Code, resp.Body.String())
		})
	}
}

func TestUpdateTodo_OverwritesAllFields(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.RegisterUser(t, router, "alice", "pw123456")
	token := testutil.LoginAndGetToken(t, router, "alice", "pw123456")

	created := testutil.CreateTestTodo(t, router, token, models.ToDoRequest{
		Title:       "Buy milk",
		Description: "Get milk from store",
		Priority:    2,
		Done:        true,
	})

	// The payload omits done, so done is overwritten with false.
	raw := []byte(`{"title":"Buy bread","description":"Get bread instead","priority":4}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/todo/%d", created.ID), bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	getResp := doJSON(t, router, http.MethodGet, fmt.Sprintf("/todo/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, getResp.Code)
	var got models.ToDo
	require.NoError(t, json.Unmarshal(getResp.Body.Bytes(), &got))
	require.Equal(t, "Buy bread", got.Title)
	require.Equal(t, "Get bread instead", got.Description)
	require.Equal(t, 4, got.Priority)
	require.False(t, got.Done)
}

func TestUpdateTodo_PartialPayloadRejected(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.RegisterUser(t, router, "alice", "pw123456")
	token := testutil.LoginAndGetToken(t, router, "alice", "pw123456")

	created := testutil.CreateTestTodo(t, router, token, models.ToDoRequest{
		Title:       "Buy milk",
		Description: "Get milk from store",
		Priority:    2,
	})

	// Missing required fields fail validation instead of preserving values.
	raw := []byte(`{"title":"Buy bread"}`)
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/todo/%d", created.ID), bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestUpdateTodo_SamePayloadSucceeds(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.RegisterUser(t, router, "alice", "pw123456")
	token := testutil.LoginAndGetToken(t, router, "alice", "pw123456")

	reqBody := models.ToDoRequest{Title: "Buy milk", Description: "Get milk from store", Priority: 2}
	created := testutil.CreateTestTodo(t, router, token, reqBody)

	// An update that changes nothing is still a 204, not a 404.
	resp := doJSON(t, router, http.MethodPut, fmt.Sprintf("/todo/%d", created.ID), token, reqBody)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())
}

func TestTodoEndpoints_RequireToken(t *testing.T) {
	db, router := testutil.SetupTestDB(t)
	defer db.Close()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/todo/read-all"},
		{http.MethodGet, "/todo/1"},
		{http.MethodPost, "/todo/"},
		{http.MethodPut, "/todo/1"},
		{http.MethodDelete, "/todo/delete_todo/1"},
	}
	for _, p := range paths {
		t.Run("no token "+p.method+" "+p.path, func(t *testing.T) {
			resp := doJSON(t, router, p.method, p.path, "", nil)
			require.Equal(t, http.StatusUnauthorized, resp.Code)
		})
		t.Run("bad token "+p.method+" "+p.path, func(t *testing.T) {
			resp := doJSON(t, router, p.method, p.path, "not-a-real-token", nil)
			require.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}
