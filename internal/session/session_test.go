package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// commitAndReplay commits the session and returns the session decoded from
// the cookie the response set, as the next request would see it.
func commitAndReplay(t *testing.T, store *Store, sess *Session) *Session {
	t.Helper()

	w := httptest.NewRecorder()
	if err := store.Commit(w, sess); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return store.Get(req)
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore([]string{"test-secret"})

	sess := &Session{Token: "bearer-token-123"}
	got := commitAndReplay(t, store, sess)

	if got.Token != "bearer-token-123" {
		t.Errorf("expected token to round-trip, got %q", got.Token)
	}
}

func TestStore_CookieAttributes(t *testing.T) {
	store := NewStore([]string{"test-secret"})

	w := httptest.NewRecorder()
	if err := store.Commit(w, &Session{Token: "tok"}); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != "__session" {
		t.Errorf("expected cookie name '__session', got %q", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly")
	}
	if !cookie.Secure {
		t.Error("expected Secure")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite lax, got %v", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Errorf("expected path '/', got %q", cookie.Path)
	}
	if cookie.MaxAge != 604800 {
		t.Errorf("expected MaxAge 604800, got %d", cookie.MaxAge)
	}
	if cookie.Value == "" || cookie.Value == "tok" {
		t.Error("cookie value must be encoded, not the raw token")
	}
}

func TestStore_MissingCookieYieldsAnonymousSession(t *testing.T) {
	store := NewStore([]string{"test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := store.Get(req)

	if sess.HasToken() {
		t.Error("expected anonymous session without a cookie")
	}
	if msg := sess.ConsumeError(); msg != "" {
		t.Errorf("expected no flash, got %q", msg)
	}
}

func TestStore_TamperedCookieYieldsAnonymousSession(t *testing.T) {
	store := NewStore([]string{"test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-valid-value"})

	if store.Get(req).HasToken() {
		t.Error("expected tampered cookie to decode as anonymous")
	}
}

func TestStore_WrongSecretYieldsAnonymousSession(t *testing.T) {
	signer := NewStore([]string{"secret-a"})
	reader := NewStore([]string{"secret-b"})

	w := httptest.NewRecorder()
	if err := signer.Commit(w, &Session{Token: "tok"}); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])

	if reader.Get(req).HasToken() {
		t.Error("expected cookie signed with unknown secret to be rejected")
	}
}

func TestStore_SecretRotation(t *testing.T) {
	old := NewStore([]string{"old-secret"})
	rotated := NewStore([]string{"new-secret", "old-secret"})

	w := httptest.NewRecorder()
	if err := old.Commit(w, &Session{Token: "tok"}); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])

	sess := rotated.Get(req)
	if sess.Token != "tok" {
		t.Errorf("expected rotated store to decode old cookie, got token %q", sess.Token)
	}
}

func TestSession_FlashIsOneShot(t *testing.T) {
	store := NewStore([]string{"test-secret"})

	// A failed action flashes an error and commits.
	sess := &Session{Token: "tok"}
	sess.Flash("Invalid username/password")
	first := commitAndReplay(t, store, sess)

	// First render consumes the flash and commits the cleared session.
	if msg := first.ConsumeError(); msg != "Invalid username/password" {
		t.Fatalf("expected flash on first read, got %q", msg)
	}
	second := commitAndReplay(t, store, first)

	// A second render of the same page sees nothing.
	if msg := second.ConsumeError(); msg != "" {
		t.Errorf("expected flash to be consumed, got %q", msg)
	}
	if second.Token != "tok" {
		t.Errorf("consuming the flash must not drop the token, got %q", second.Token)
	}
}

func TestStore_Destroy(t *testing.T) {
	store := NewStore([]string{"test-secret"})

	w := httptest.NewRecorder()
	store.Destroy(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" {
		t.Errorf("expected empty value, got %q", cookies[0].Value)
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookies[0].MaxAge)
	}
}
