package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt"

// CookiePolicy maps session tokens to and from the session cookie with fixed
// security attributes: HttpOnly, SameSite=Strict, and Secure outside of
// development mode.
type CookiePolicy struct {
	maxAge time.Duration
	secure bool
}

func NewCookiePolicy(maxAge time.Duration, secure bool) *CookiePolicy {
	return &CookiePolicy{maxAge: maxAge, secure: secure}
}

// Attach sets the session cookie with the given token on the response.
func (p *CookiePolicy) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(p.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   p.secure,
	})
}

// Clear replaces the session cookie with an immediately-expiring empty one
// (Max-Age=0 on the wire).
func (p *CookiePolicy) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   p.secure,
	})
}
