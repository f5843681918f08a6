package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"frontend/internal/utils"
)

// peekExpiry logs when the session will expire if the token happens to be a
// JWT. Tokens are otherwise opaque; an unparseable token is simply skipped
// and nothing here feeds back into auth decisions.
func (s *Store) peekExpiry(token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	utils.LogEvent("", "auth", "token", "session expires "+exp.Time.Format("2006-01-02 15:04:05"))
}
