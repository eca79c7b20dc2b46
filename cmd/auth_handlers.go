package cmd

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/lakeservice/auth"
)

// LoginRequest is the JSON body of the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// loginHandler processes login requests and issues a JWT
func loginHandler(c echo.Context) error {
	if getAuthMode() == auth.AuthModeNone {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "authentication is disabled (AUTH_MODE=none)",
		})
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "invalid request body",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": "username and password are required",
		})
	}

	// Generic error message to prevent username enumeration
	user, err := userStore.GetUser(req.Username)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error": "invalid username or password",
		})
	}

	if user.Locked {
		return c.JSON(http.StatusForbidden, map[string]interface{}{
			"error": "account is locked, contact an administrator",
		})
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		_ = userStore.RecordLoginAttempt(req.Username, false)
		logAudit(c, req.Username, auth.ActionLogin, "", false, "invalid password")

		user, _ = userStore.GetUser(req.Username)
		if user != nil && user.Locked {
			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"error": "too many failed attempts, account is now locked",
			})
		}
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"error": "invalid username or password",
		})
	}

	_ = userStore.RecordLoginAttempt(req.Username, true)

	hours := getSessionTimeoutHours()
	token, err := auth.GenerateToken(*user, getJWTSecret(), hours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error": "failed to generate token",
		})
	}

	logAudit(c, user.Username, auth.ActionLogin, "", true, "")

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresIn: hours * 3600,
	})
}

// Helper functions

func getJWTSecret() string {
	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		fmt.Println("WARNING: JWT_SECRET not set. Using default (INSECURE for production)")
		secret = "default-jwt-secret-change-in-production"
	}
	return secret
}

func getSessionTimeoutHours() int {
	timeout := getEnvInt("SESSION_TIMEOUT", 3600) // in seconds
	return timeout / 3600
}

func getAuthMode() auth.AuthMode {
	mode := getEnv("AUTH_MODE", string(auth.AuthModeNone))
	return auth.AuthMode(mode)
}

// currentUsername returns the authenticated username, or "" when requests
// are unauthenticated (AUTH_MODE=none).
func currentUsername(c echo.Context) string {
	if val := c.Get("username"); val != nil {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

// logAudit records a security-relevant event. Audit failures are logged and
// otherwise ignored so they never break the request path.
func logAudit(c echo.Context, username, action, cmdLine string, success bool, errorMsg string) {
	if auditLogger == nil {
		return
	}
	entry := auth.AuditEntry{
		Username:  username,
		Action:    action,
		Command:   cmdLine,
		Success:   success,
		IPAddress: c.RealIP(),
		ErrorMsg:  errorMsg,
	}
	if val := c.Get("user_id"); val != nil {
		if s, ok := val.(string); ok {
			entry.UserID = s
		}
	}
	if err := auditLogger.LogEntry(entry); err != nil {
		c.Logger().Errorf("failed to write audit entry: %v", err)
	}
}
