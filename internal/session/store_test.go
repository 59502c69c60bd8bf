package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	store := NewStore("admin_token", 24*time.Hour, false)

	t.Run("set writes an http-only lax cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		store.Set(rec, "tok-123")

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected 1 cookie, got %d", len(cookies))
		}
		c := cookies[0]
		if c.Name != "admin_token" || c.Value != "tok-123" {
			t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
		}
		if !c.HttpOnly {
			t.Error("cookie must be http-only")
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("expected SameSite=Lax, got %v", c.SameSite)
		}
		if c.Path != "/" {
			t.Errorf("expected path /, got %s", c.Path)
		}
		if c.MaxAge != int((24 * time.Hour).Seconds()) {
			t.Errorf("unexpected max age %d", c.MaxAge)
		}
	})

	t.Run("token reads the cookie back", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "admin_token", Value: "tok-123"})

		token, ok := store.Token(req)
		if !ok || token != "tok-123" {
			t.Errorf("expected tok-123, got %q (ok=%v)", token, ok)
		}
	})

	t.Run("missing or empty cookie yields no token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, ok := store.Token(req); ok {
			t.Error("expected no token without cookie")
		}

		req.AddCookie(&http.Cookie{Name: "admin_token", Value: ""})
		if _, ok := store.Token(req); ok {
			t.Error("expected no token for empty cookie")
		}
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		store.Clear(rec)

		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected 1 cookie, got %d", len(cookies))
		}
		if cookies[0].MaxAge != -1 {
			t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
		}
		if cookies[0].Value != "" {
			t.Errorf("expected empty value, got %q", cookies[0].Value)
		}
	})
}

func TestTokenContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := WithToken(req.Context(), "tok-abc")

	token, ok := TokenFromContext(ctx)
	if !ok || token != "tok-abc" {
		t.Errorf("expected tok-abc, got %q (ok=%v)", token, ok)
	}

	if _, ok := TokenFromContext(req.Context()); ok {
		t.Error("expected no token on bare context")
	}
}
