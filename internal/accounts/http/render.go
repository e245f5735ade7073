package http

import (
	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
)

// RenderForCreate shapes the response to a successful create. It has no
// token field at all.
func RenderForCreate(u domain.User) accountsdk.CreatedUserResponse {
	return accountsdk.CreatedUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// RenderForRead shapes a user for every other response.
func RenderForRead(u domain.User) accountsdk.UserResponse {
	return accountsdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func renderList(users []domain.User) []accountsdk.UserResponse {
	out := make([]accountsdk.UserResponse, len(users))
	for i, u := range users {
		out[i] = RenderForRead(u)
	}
	return out
}
