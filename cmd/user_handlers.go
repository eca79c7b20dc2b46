package cmd

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"evalgo.org/lakeservice/auth"
)

// UserResponse represents the user data returned by the API (without password hash)
type UserResponse struct {
	ID                 string     `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	FailedLogins       int        `json:"failed_logins"`
	Locked             bool       `json:"locked"`
	MustChangePassword bool       `json:"must_change_password"`
}

// CreateUserRequest represents the request to create a new user
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Locked   *bool   `json:"locked,omitempty"`
}

// userToResponse converts a User to UserResponse (removes sensitive data)
func userToResponse(user *auth.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Role:               user.Role,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
		LastLoginAt:        user.LastLoginAt,
		FailedLogins:       user.FailedLogins,
		Locked:             user.Locked,
		MustChangePassword: user.MustChangePassword,
	}
}

// registerUserEndpoints wires the admin-only user management routes.
// The routes are only meaningful when authentication is enabled.
func registerUserEndpoints(g *echo.Group, base ...echo.MiddlewareFunc) {
	mw := append(append([]echo.MiddlewareFunc{}, base...),
		AuthMiddleware(getAuthMode()), AdminOnlyMiddleware())

	g.GET("/users", listUsersHandler, mw...)
	g.POST("/users", createUserHandler, mw...)
	g.PUT("/users/:username", updateUserHandler, mw...)
	g.DELETE("/users/:username", deleteUserHandler, mw...)
}

// listUsersHandler returns all users (admin only)
func listUsersHandler(c echo.Context) error {
	if userStore == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error": "user management requires AUTH_MODE to be enabled",
		})
	}

	users, err := userStore.ListUsers()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, userToResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": responses,
		"count": len(responses),
	})
}

// createUserHandler creates a new user (admin only)
func createUserHandler(c echo.Context) error {
	if userStore == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error": "user management requires AUTH_MODE to be enabled",
		})
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "username and password are required",
		})
	}
	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}
	if role != auth.RoleAdmin && role != auth.RoleUser {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "role must be admin or user",
		})
	}

	user, err := userStore.CreateUser(req.Username, req.Password, req.Email, role)
	if err != nil {
		return c.JSON(http.StatusConflict, map[string]interface{}{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, userToResponse(user))
}

// updateUserHandler updates an existing user (admin only)
func updateUserHandler(c echo.Context) error {
	if userStore == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error": "user management requires AUTH_MODE to be enabled",
		})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Locked != nil {
		updates["locked"] = *req.Locked
	}

	username := c.Param("username")
	if err := userStore.UpdateUser(username, updates); err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"error": err.Error()})
	}

	user, err := userStore.GetUser(username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, userToResponse(user))
}

// deleteUserHandler deletes a user (admin only)
func deleteUserHandler(c echo.Context) error {
	if userStore == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"error": "user management requires AUTH_MODE to be enabled",
		})
	}

	// An admin cannot delete their own account
	if username := currentUsername(c); username == c.Param("username") {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "cannot delete your own account",
		})
	}

	if err := userStore.DeleteUser(c.Param("username")); err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
