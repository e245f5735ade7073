package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type UsersHandler struct {
	AccountService *service.AccountService
}

// Create handles user registration
//
//	@Summary		Create a user
//	@Description	Registers a new active user. The password is write-only and the token field is ignored.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.CreateUserRequest	true	"New user"
//	@Success		201		{object}	accountsdk.CreatedUserResponse	"Created user"
//	@Failure		400		{object}	accountsdk.ErrorResponse		"Validation error or duplicate username"
//	@Failure		500		{object}	accountsdk.ErrorResponse		"Internal server error"
//	@Router			/users [post].
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.CreateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	u, err := h.AccountService.Create(r.Context(), service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RenderForCreate(u))
}

// List handles listing users
//
//	@Summary		List users
//	@Description	Returns every user ordered by id.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		accountsdk.UserResponse		"Users"
//	@Failure		500	{object}	accountsdk.ErrorResponse	"Internal server error"
//	@Router			/users [get].
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.AccountService.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, renderList(users))
}

// Get handles fetching a single user
//
//	@Summary		Get a user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int							true	"User id"
//	@Success		200	{object}	accountsdk.UserResponse		"User"
//	@Failure		400	{object}	accountsdk.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	accountsdk.ErrorResponse	"No such user"
//	@Router			/users/{id} [get].
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.AccountService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, RenderForRead(u))
}

// Update handles partial updates over PATCH and PUT
//
//	@Summary		Update a user
//	@Description	Applies only the supplied fields. A supplied password is rehashed.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"User id"
//	@Param			request	body		accountsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	accountsdk.UserResponse			"Updated user"
//	@Failure		400		{object}	accountsdk.ErrorResponse		"Validation error or duplicate username"
//	@Failure		404		{object}	accountsdk.ErrorResponse		"No such user"
//	@Router			/users/{id} [patch]
//	@Router			/users/{id} [put].
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req accountsdk.UpdateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	u, err := h.AccountService.Update(r.Context(), id, service.UpdateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, RenderForRead(u))
}

// Delete handles removing a user
//
//	@Summary		Delete a user
//	@Tags			Users
//	@Param			id	path	int	true	"User id"
//	@Success		204	"Deleted"
//	@Failure		400	{object}	accountsdk.ErrorResponse	"Malformed id"
//	@Failure		404	{object}	accountsdk.ErrorResponse	"No such user"
//	@Router			/users/{id} [delete].
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.AccountService.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
