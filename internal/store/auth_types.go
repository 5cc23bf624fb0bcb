package store

import "regexp"

type VerifyEmailRequest struct {
	Email string `json:"email"`
}

type VerifyEmailCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

var codePattern = regexp.MustCompile(`^[0-9A-Za-z]{6,8}$`)

// IsValidCode reports whether s looks like an emailed verification code.
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}
