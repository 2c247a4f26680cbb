package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	session  *Session
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func NewCookies(session *Session) (*Cookies, error) {
	if session == nil {
		return nil, fmt.Errorf("cookies need a session config")
	}
	cookies := &Cookies{
		Domain:   os.Getenv("COOKIES_DOMAIN"),
		Secure:   lookupEnv("COOKIES_SECURE", "1") != "0",
		SameSite: parseSameSite(lookupEnv("COOKIES_SAMESITE", "LAX")),
		session:  session,
	}
	return cookies, nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     signCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

/*
Refresh stores a signed token split in two: the header and payload stay
readable by the page, the signature goes into an HttpOnly cookie.
*/
func (c *Cookies) Refresh(w http.ResponseWriter, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	expires := time.Now().Add(c.session.tokenLifetime)
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Path:     "/",
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     signCookie,
		Path:     "/",
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

// ParseSessionClaims reads the token from the cookie pair, falling back to
// an Authorization bearer header for non-browser clients.
func (c *Cookies) ParseSessionClaims(r *http.Request) (*SessionClaims, error) {
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return c.session.Parse(strings.TrimSpace(bearer))
	}
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return nil, err
	}
	return c.session.Parse(auth.Value + "." + sign.Value)
}
