package auth

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdatePasswordRequest completes the emailed recovery flow.
type UpdatePasswordRequest struct {
	RecoveryToken   string `json:"recovery_token" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ChangePasswordRequest is the settings screen form of a signed-in user.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	LastSignInAt string `json:"last_sign_in_at,omitempty"`
}

type SessionResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        AuthResponse `json:"user"`
}

// RecoveryResponse carries the token only outside production, where no
// mailer is wired.
type RecoveryResponse struct {
	Sent          bool   `json:"sent"`
	RecoveryToken string `json:"recovery_token,omitempty"`
}
