package accountsdk

import "encoding/json"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a stable machine readable code such as "not_found".
	Error string `json:"error"`

	// ErrorDescription is a human readable message.
	ErrorDescription string `json:"error_description"`

	// Details maps a rejected input field to what was wrong with it. Only set
	// for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// CreateUserRequest is the body of POST /users. Token is accepted in any JSON
// form so clients can send back a full user document, but it is ignored.
type CreateUserRequest struct {
	Username  string          `json:"username"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Token     json.RawMessage `json:"token,omitempty" swaggertype:"string"`
}

// UpdateUserRequest is the body of PATCH and PUT /users/{id}. Omitted or null
// fields are left untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// CreatedUserResponse is returned by POST /users. It never carries a token.
type CreatedUserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserResponse is the read representation of a user. Token is read-only and
// left empty unless a future context mints one.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Token     string `json:"token,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// LoginRequest is the body of POST /api-token-auth.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a signed HS256 token with claims {id, iat, exp}.
type TokenResponse struct {
	Token string `json:"token"`
}

// ============================================================================
// Health Types
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
