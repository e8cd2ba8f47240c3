package dto

// RegisterRequest creates the directory row and, when no UID is supplied (the
// frontend-SDK flow already created the provider account), the provider
// account as well.
type RegisterRequest struct {
	UID      string `json:"uid,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// Session is the identity provider's password-grant result.
type Session struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    string `json:"expiresIn,omitempty"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
}
