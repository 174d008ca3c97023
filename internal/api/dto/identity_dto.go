package dto

// RegisterRequest payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse carries the bearer token and its principal.
type SessionResponse struct {
	Principal string `json:"principal"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// AccountResponse is the caller's profile.
type AccountResponse struct {
	Principal string `json:"principal"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
