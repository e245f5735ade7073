package http

import (
	"strconv"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func sampleUser() domain.User {
	return domain.User{
		ID:           7,
		Username:     "ada",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PasswordHash: "$argon2id$secret",
		IsActive:     true,
	}
}
