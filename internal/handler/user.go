package handler

import (
	"net/http"
	"strconv"

	"github.com/doondisunkara/messy-migration/internal/entity"
	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/doondisunkara/messy-migration/internal/service"
	"github.com/doondisunkara/messy-migration/internal/validation"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the user CRUD, search and login endpoints.
type UserHandler struct {
	Handler
	users *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// parseUserID converts a path id into an int64. A non-numeric id cannot
// match any record, so it reports the endpoint's not-found outcome rather
// than a syntax error.
func parseUserID(raw, notFoundMessage string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewNotFoundError(notFoundMessage)
	}
	return id, nil
}

// --- Requests ---------------------------------------------------------------

// ListUsersRequest has no input.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error { return nil }

// GetUserRequest carries the path id.
type GetUserRequest struct {
	ID string `param:"id"`
}

// Validate is a no-op: id semantics are resolved against the store, where
// an unmatchable id is a not-found outcome, not a validation failure.
func (r *GetUserRequest) Validate() error { return nil }

// CreateUserRequest carries the fields of a new user.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the fields in declared order and returns on the first
// failure, so error messages are deterministic.
func (r *CreateUserRequest) Validate() error {
	if err := validation.RequiredField(r.Name, "User Name"); err != nil {
		return err
	}
	if err := validation.RequiredField(r.Email, "Email"); err != nil {
		return err
	}
	return validation.RequiredField(r.Password, "Password")
}

// UpdateUserRequest carries the path id and the replacement fields.
// Password is not updatable through this endpoint.
type UpdateUserRequest struct {
	ID    string `param:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate is a no-op: the contract requires the existence check (404) to
// precede all field validation, so the handler sequences those checks.
func (r *UpdateUserRequest) Validate() error { return nil }

// DeleteUserRequest carries the path id.
type DeleteUserRequest struct {
	ID string `param:"id"`
}

func (r *DeleteUserRequest) Validate() error { return nil }

// SearchUsersRequest carries the name fragment to search for.
type SearchUsersRequest struct {
	Name string `query:"name"`
}

// Validate requires a name to be present.
func (r *SearchUsersRequest) Validate() error {
	if r.Name == "" {
		return errs.NewBadRequestError("Please provide a name to search")
	}
	return nil
}

// LoginRequest carries the credentials to verify.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks email before password, first failure wins.
func (r *LoginRequest) Validate() error {
	if err := validation.RequiredField(r.Email, "Email"); err != nil {
		return err
	}
	return validation.RequiredField(r.Password, "Password")
}

// --- Responses --------------------------------------------------------------

// UsersListResponse wraps a list of users (list and search endpoints).
type UsersListResponse struct {
	Response
	Users []entity.User `json:"users_list"`
}

// UserDetailsResponse wraps a single user record.
type UserDetailsResponse struct {
	Response
	User *entity.User `json:"user_details"`
}

// MessageResponse wraps a confirmation message.
type MessageResponse struct {
	Response
	Message string `json:"message"`
}

// LoginResponse carries the authenticated user's id.
type LoginResponse struct {
	Response
	UserID int64 `json:"user_id"`
}

// --- Endpoints --------------------------------------------------------------

// List returns all users.
func (h *UserHandler) List(c echo.Context, _ *ListUsersRequest) (UsersListResponse, error) {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return UsersListResponse{}, err
	}

	return UsersListResponse{
		Response: successResponse(http.StatusOK),
		Users:    users,
	}, nil
}

// Get returns a single user by path id.
func (h *UserHandler) Get(c echo.Context, req *GetUserRequest) (UserDetailsResponse, error) {
	id, err := parseUserID(req.ID, "User Not Found")
	if err != nil {
		return UserDetailsResponse{}, err
	}

	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return UserDetailsResponse{}, err
	}

	return UserDetailsResponse{
		Response: successResponse(http.StatusOK),
		User:     user,
	}, nil
}

// Create validates and stores a new user.
func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (MessageResponse, error) {
	_, err := h.users.Create(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return MessageResponse{}, err
	}

	return MessageResponse{
		Response: successResponse(http.StatusCreated),
		Message:  "User created",
	}, nil
}

// Update replaces name and email of an existing user.
//
// Check order is part of the contract: the id must exist (404) before the
// presence of both fields is enforced (400), before the trim rule runs on
// name then email (422), before the uniqueness check (409).
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (MessageResponse, error) {
	ctx := c.Request().Context()

	id, err := parseUserID(req.ID, "Invalid User ID")
	if err != nil {
		return MessageResponse{}, err
	}

	if _, err := h.users.Get(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return MessageResponse{}, errs.NewNotFoundError("Invalid User ID")
		}
		return MessageResponse{}, err
	}

	if req.Name == "" || req.Email == "" {
		return MessageResponse{}, errs.NewBadRequestError("Require User Data")
	}
	if err := validation.RequiredField(req.Name, "User Name"); err != nil {
		return MessageResponse{}, err
	}
	if err := validation.RequiredField(req.Email, "Email"); err != nil {
		return MessageResponse{}, err
	}

	if err := h.users.Update(ctx, id, req.Name, req.Email); err != nil {
		return MessageResponse{}, err
	}

	return MessageResponse{
		Response: successResponse(http.StatusOK),
		Message:  "User updated",
	}, nil
}

// Delete removes a user by path id.
func (h *UserHandler) Delete(c echo.Context, req *DeleteUserRequest) (MessageResponse, error) {
	id, err := parseUserID(req.ID, "User Id Not Found")
	if err != nil {
		return MessageResponse{}, err
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return MessageResponse{}, err
	}

	return MessageResponse{
		Response: successResponse(http.StatusOK),
		Message:  "User deleted",
	}, nil
}

// Search returns all users whose name contains the query fragment.
// An empty match set is a success, not an error.
func (h *UserHandler) Search(c echo.Context, req *SearchUsersRequest) (UsersListResponse, error) {
	users, err := h.users.Search(c.Request().Context(), req.Name)
	if err != nil {
		return UsersListResponse{}, err
	}

	return UsersListResponse{
		Response: successResponse(http.StatusOK),
		Users:    users,
	}, nil
}

// Login verifies credentials and returns the matched user's id.
func (h *UserHandler) Login(c echo.Context, req *LoginRequest) (LoginResponse, error) {
	userID, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Response: successResponse(http.StatusOK),
		UserID:   userID,
	}, nil
}
