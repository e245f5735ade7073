package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles password login
//
//	@Summary		Obtain a token
//	@Description	Exchanges a username and password for an HS256 token carrying {id, exp}.
//	@Description	Unknown usernames and wrong passwords return the same error.
//	@Tags			Token
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	accountsdk.TokenResponse	"Token"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Missing field, bad credentials or deactivated account"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"Internal server error"
//	@Router			/api-token-auth [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadBody(w, err)
		return
	}

	tok, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.TokenResponse{Token: tok.Token})
}
