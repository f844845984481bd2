package router

import (
	"net/http"

	"github.com/doondisunkara/messy-migration/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerUserRoutes maps the user-management endpoints onto the typed
// handler pipeline. Each route gets a fresh request value per invocation.
func registerUserRoutes(e *echo.Echo, h *handler.Handlers) {
	base := h.Users.Handler

	e.GET("/users", handler.Handle(base, h.Users.List, http.StatusOK,
		func() *handler.ListUsersRequest { return &handler.ListUsersRequest{} }))

	e.GET("/user/:id", handler.Handle(base, h.Users.Get, http.StatusOK,
		func() *handler.GetUserRequest { return &handler.GetUserRequest{} }))

	e.POST("/users", handler.Handle(base, h.Users.Create, http.StatusCreated,
		func() *handler.CreateUserRequest { return &handler.CreateUserRequest{} }))

	e.PUT("/user/:id", handler.Handle(base, h.Users.Update, http.StatusOK,
		func() *handler.UpdateUserRequest { return &handler.UpdateUserRequest{} }))

	e.DELETE("/user/:id", handler.Handle(base, h.Users.Delete, http.StatusOK,
		func() *handler.DeleteUserRequest { return &handler.DeleteUserRequest{} }))

	e.GET("/search", handler.Handle(base, h.Users.Search, http.StatusOK,
		func() *handler.SearchUsersRequest { return &handler.SearchUsersRequest{} }))

	e.POST("/login", handler.Handle(base, h.Users.Login, http.StatusOK,
		func() *handler.LoginRequest { return &handler.LoginRequest{} }))
}
