package accountsdk

import (
	"context"
	"net/http"
	"strconv"
)

// CreateUser registers a new user.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*CreatedUserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/users", req)
	if err != nil {
		return nil, err
	}

	var user CreatedUserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user ordered by id.
func (c *SDKClient) ListUsers(ctx context.Context) ([]UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}

	var users []UserResponse
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *SDKClient) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, userPath(id), nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends a partial update. Only non-nil fields of req change.
func (c *SDKClient) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	return c.updateUser(ctx, http.MethodPatch, id, req)
}

// ReplaceUser is UpdateUser over PUT. The server treats both the same way.
func (c *SDKClient) ReplaceUser(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	return c.updateUser(ctx, http.MethodPut, id, req)
}

func (c *SDKClient) updateUser(ctx context.Context, method string, id int64, req UpdateUserRequest) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, method, userPath(id), req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user. Deleting an already deleted user returns a
// not_found *APIError.
func (c *SDKClient) DeleteUser(ctx context.Context, id int64) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, userPath(id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}
