// Package session owns the persisted bearer token. The token lives in a
// single HTTP-only cookie, the server-rendered analog of the browser
// localStorage slot the console replaces. Handlers go through Store and
// the context helpers; nothing else reads or writes the cookie.
package session

import (
	"net/http"
	"time"
)

type Store struct {
	name   string
	maxAge time.Duration
	secure bool
}

func NewStore(name string, maxAge time.Duration, secure bool) *Store {
	return &Store{
		name:   name,
		maxAge: maxAge,
		secure: secure,
	}
}

// Token returns the stored bearer token, if any. Its presence is the sole
// authentication signal until a profile fetch confirms validity.
func (s *Store) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func (s *Store) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
