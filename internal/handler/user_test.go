package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doondisunkara/messy-migration/internal/config"
	"github.com/doondisunkara/messy-migration/internal/entity"
	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/doondisunkara/messy-migration/internal/handler"
	"github.com/doondisunkara/messy-migration/internal/middleware"
	"github.com/doondisunkara/messy-migration/internal/router"
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/doondisunkara/messy-migration/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory stand-in for the Postgres repository, with
// the same contract: ids in insertion order, generic not-found errors,
// conflict on duplicate email.
type memUserRepo struct {
	users  []entity.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1}
}

func (m *memUserRepo) List(ctx context.Context) ([]entity.User, error) {
	return append([]entity.User{}, m.users...), nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, errs.NewNotFoundError("User Not Found")
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			user := m.users[i]
			return &user, nil
		}
	}
	return nil, errs.NewNotFoundError("User Not Found")
}

func (m *memUserRepo) SearchByName(ctx context.Context, fragment string) ([]entity.User, error) {
	matches := []entity.User{}
	for _, user := range m.users {
		if strings.Contains(strings.ToLower(user.Name), strings.ToLower(fragment)) {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

func (m *memUserRepo) Insert(ctx context.Context, name, email, passwordHash string) (int64, error) {
	for _, user := range m.users {
		if user.Email == email {
			return 0, errs.NewConflictError("Email already found, Enter another email")
		}
	}

	id := m.nextID
	m.nextID++
	m.users = append(m.users, entity.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash})
	return id, nil
}

func (m *memUserRepo) Update(ctx context.Context, id int64, name, email string) error {
	for _, user := range m.users {
		if user.ID != id && user.Email == email {
			return errs.NewConflictError("Email already found, Enter another email")
		}
	}
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Name = name
			m.users[i].Email = email
			return nil
		}
	}
	return errs.NewNotFoundError("User Not Found")
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError("User Not Found")
}

// newTestAPI wires the real router, middleware chain and global error
// handler over an in-memory repository. No database is involved.
func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: config.DefaultLoggingConfig(),
	}
	log := zerolog.Nop()
	srv := &server.Server{Config: cfg, Logger: &log}

	users := service.NewUserService(newMemUserRepo(), &log)
	handlers := &handler.Handlers{
		Health: handler.NewHealthHandler(srv),
		Users:  handler.NewUserHandler(srv, users),
	}

	return router.New(srv, handlers, middleware.NewMiddlewares(srv))
}

func doRequest(t *testing.T, e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// createUser seeds a user through the API. The in-memory repository assigns
// ids in insertion order starting at 1.
func createUser(t *testing.T, e *echo.Echo, name, email, password string) {
	t.Helper()

	rec := doRequest(t, e, http.MethodPost, "/users", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func assertFailure(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantMessage string) {
	t.Helper()

	assert.Equal(t, wantCode, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	wantStatus := "failed"
	if wantCode >= 500 {
		wantStatus = "error"
	}
	assert.Equal(t, wantStatus, body["status"])
	assert.Equal(t, float64(wantCode), body["status_code"])
	assert.Equal(t, wantMessage, body["message"])
}

func TestLiveness(t *testing.T) {
	e := newTestAPI(t)

	rec := doRequest(t, e, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User Management System", rec.Body.String())
}

func TestRouteNotFound(t *testing.T) {
	e := newTestAPI(t)

	rec := doRequest(t, e, http.MethodGet, "/nope", nil)

	assertFailure(t, rec, http.StatusNotFound, "Route not found")
}

func TestCreateUser(t *testing.T) {
	e := newTestAPI(t)

	rec := doRequest(t, e, http.MethodPost, "/users", map[string]string{
		"name": "John Doe", "email": "John@Example.COM", "password": "password123",
	})

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(http.StatusCreated), body["status_code"])
	assert.Equal(t, "User created", body["message"])

	// The stored email is normalized to lowercase and the hash never leaks.
	rec = doRequest(t, e, http.MethodGet, "/user/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	details := decodeBody(t, rec)["user_details"].(map[string]any)
	assert.Equal(t, "john@example.com", details["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUserValidationOrder(t *testing.T) {
	e := newTestAPI(t)

	tests := []struct {
		name    string
		payload map[string]string
		wantMsg string
	}{
		{
			name:    "missing name reported first",
			payload: map[string]string{"email": "a@b.com", "password": "x"},
			wantMsg: "Require User Name",
		},
		{
			name:    "blank name",
			payload: map[string]string{"name": "   ", "email": "a@b.com", "password": "x"},
			wantMsg: "Invalid User Name",
		},
		{
			name:    "missing email",
			payload: map[string]string{"name": "John", "password": "x"},
			wantMsg: "Require Email",
		},
		{
			name:    "blank email",
			payload: map[string]string{"name": "John", "email": "\t", "password": "x"},
			wantMsg: "Invalid Email",
		},
		{
			name:    "missing password",
			payload: map[string]string{"name": "John", "email": "a@b.com"},
			wantMsg: "Require Password",
		},
		{
			name:    "empty body still starts with name",
			payload: map[string]string{},
			wantMsg: "Require User Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, e, http.MethodPost, "/users", tt.payload)
			assertFailure(t, rec, http.StatusUnprocessableEntity, tt.wantMsg)
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	e := newTestAPI(t)
	createUser(t, e, "John Doe", "john@example.com", "password123")

	rec := doRequest(t, e, http.MethodPost, "/users", map[string]string{
		"name": "Johnny", "email": "JOHN@Example.com", "password": "other456",
	})

	assertFailure(t, rec, http.StatusConflict, "Email already found, Enter another email")
}

func TestGetUser(t *testing.T) {
	e := newTestAPI(t)
	createUser(t, e, "John Doe", "john@example.com", "password123")

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/user/1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		details := body["user_details"].(map[string]any)
		assert.Equal(t, float64(1), details["id"])
		assert.Equal(t, "John Doe", details["name"])
		assert.Equal(t, "john@example.com", details["email"])
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/user/999", nil)
		assertFailure(t, rec, http.StatusNotFound, "User Not Found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/user/abc", nil)
		assertFailure(t, rec, http.StatusNotFound, "User Not Found")
	})
}

func TestListUsers(t *testing.T) {
	e := newTestAPI(t)

	t.Run("empty store", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/users", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Empty(t, body["users_list"])
	})

	t.Run("insertion order", func(t *testing.T) {
		createUser(t, e, "John Doe", "john@example.com", "password123")
		createUser(t, e, "Jane Smith", "jane@example.com", "secret456")

		rec := doRequest(t, e, http.MethodGet, "/users", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody(t, rec)["users_list"].([]any)
		require.Len(t, list, 2)
		assert.Equal(t, "John Doe", list[0].(map[string]any)["name"])
		assert.Equal(t, "Jane Smith", list[1].(map[string]any)["name"])
	})
}

func TestUpdateUser(t *testing.T) {
	e := newTestAPI(t)
	createUser(t, e, "John Doe", "john@example.com", "password123")
	createUser(t, e, "Jane Smith", "jane@example.com", "secret456")

	t.Run("unknown id beats field validation", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPut, "/user/999", map[string]string{})
		assertFailure(t, rec, http.StatusNotFound, "Invalid User ID")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPut, "/user/abc", map[string]string{
			"name": "John", "email": "john@example.com",
		})
		assertFailure(t, rec, http.StatusNotFound, "Invalid User ID")
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, payload := range []map[string]string{
			{},
			{"name": "John Renamed"},
			{"email": "new@example.com"},
		} {
			rec := doRequest(t, e, http.MethodPut, "/user/1", payload)
			assertFailure(t, rec, http.StatusBadRequest, "Require User Data")
		}

		// Nothing was applied by the rejected requests.
		rec := doRequest(t, e, http.MethodGet, "/user/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		details := decodeBody(t, rec)["user_details"].(map[string]any)
		assert.Equal(t, "John Doe", details["name"])
		assert.Equal(t, "john@example.com", details["email"])
	})

	t.Run("blank name reported before blank email", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPut, "/user/1", map[string]string{
			"name": "   ", "email": "  ",
		})
		assertFailure(t, rec, http.StatusUnprocessableEntity, "Invalid User Name")
	})

	t.Run("blank email", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPut, "/user/1", map[string]string{
			"name": "John Doe", "email": "  ",
		})
		assertFailure(t, rec, http.StatusUnprocessableEntity, "Invalid Email")
	})

	t.Run("email owned by another user", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPut, "/user/2", map[string]string{
			"name": "Jane Smith", "email": "JOHN@example.com",
		})
		assertFailure(t, rec, http.StatusConflict, "Email already found, Enter another email")
	})

	t.Run("success normalizes email", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPut, "/user/1", map[string]string{
			"name": "John Renamed", "email": " John.Doe@Example.COM ",
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "User updated", body["message"])

		rec = doRequest(t, e, http.MethodGet, "/user/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		details := decodeBody(t, rec)["user_details"].(map[string]any)
		assert.Equal(t, "John Renamed", details["name"])
		assert.Equal(t, "john.doe@example.com", details["email"])
	})
}

func TestDeleteUser(t *testing.T) {
	e := newTestAPI(t)
	createUser(t, e, "John Doe", "john@example.com", "password123")

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodDelete, "/user/999", nil)
		assertFailure(t, rec, http.StatusNotFound, "User Id Not Found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodDelete, "/user/abc", nil)
		assertFailure(t, rec, http.StatusNotFound, "User Id Not Found")
	})

	t.Run("delete then get", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodDelete, "/user/1", nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "User deleted", body["message"])

		rec = doRequest(t, e, http.MethodGet, "/user/1", nil)
		assertFailure(t, rec, http.StatusNotFound, "User Not Found")
	})
}

func TestSearchUsers(t *testing.T) {
	e := newTestAPI(t)
	createUser(t, e, "John Doe", "john@example.com", "password123")
	createUser(t, e, "Jane Smith", "jane@example.com", "secret456")
	createUser(t, e, "Bob Johnson", "bob@example.com", "qwerty789")

	t.Run("missing query parameter", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/search", nil)
		assertFailure(t, rec, http.StatusBadRequest, "Please provide a name to search")
	})

	t.Run("case-insensitive substring match", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/search?name=doe", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody(t, rec)["users_list"].([]any)
		require.Len(t, list, 1)
		assert.Equal(t, "John Doe", list[0].(map[string]any)["name"])
	})

	t.Run("fragment matching several users", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/search?name=John", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeBody(t, rec)["users_list"].([]any)
		assert.Len(t, list, 2)
	})

	t.Run("no match is a success", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/search?name=zzz", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Empty(t, body["users_list"])
	})
}

func TestLogin(t *testing.T) {
	e := newTestAPI(t)
	createUser(t, e, "John Doe", "john@example.com", "password123")

	t.Run("missing email", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPost, "/login", map[string]string{"password": "password123"})
		assertFailure(t, rec, http.StatusUnprocessableEntity, "Require Email")
	})

	t.Run("missing password", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPost, "/login", map[string]string{"email": "john@example.com"})
		assertFailure(t, rec, http.StatusUnprocessableEntity, "Require Password")
	})

	t.Run("valid credentials with mixed-case email", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodPost, "/login", map[string]string{
			"email": "John@Example.com", "password": "password123",
		})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, float64(1), body["user_id"])
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPassword := doRequest(t, e, http.MethodPost, "/login", map[string]string{
			"email": "john@example.com", "password": "nope",
		})
		unknownEmail := doRequest(t, e, http.MethodPost, "/login", map[string]string{
			"email": "ghost@example.com", "password": "password123",
		})

		assertFailure(t, wrongPassword, http.StatusNotFound, "Invalid Email or Password")
		assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
		assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestLifecycleRoundTrip(t *testing.T) {
	e := newTestAPI(t)

	createUser(t, e, "John Doe", "John@Example.COM", "password123")

	rec := doRequest(t, e, http.MethodPost, "/login", map[string]string{
		"email": "john@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	userID := int64(decodeBody(t, rec)["user_id"].(float64))
	rec = doRequest(t, e, http.MethodPut, fmt.Sprintf("/user/%d", userID), map[string]string{
		"name": "John Renamed", "email": "renamed@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, e, http.MethodDelete, fmt.Sprintf("/user/%d", userID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, e, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["users_list"])
}
