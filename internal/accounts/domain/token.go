package domain

// TokenResponse is what a successful login hands back.
type TokenResponse struct {
	Token string
}
