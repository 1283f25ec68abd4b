package auth

// Claims representa la identidad que viaja dentro del token.
type Claims struct {
	UserID string
	Email  string
}
