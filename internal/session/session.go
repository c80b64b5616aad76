// Package session implements the "__session" cookie: a signed and encrypted
// value holding the backend bearer token and a one-shot flash error. The
// cookie is the only cross-request state this application owns; it is read
// and written as a whole, never partially mutated.
package session

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/securecookie"
)

const (
	// CookieName matches the name the storefront has always used.
	CookieName = "__session"

	// MaxAge is seven days, in seconds.
	MaxAge = 604800
)

// payload is the encoded cookie content. Fields are exported for the codec.
type payload struct {
	Token      string
	FlashError string
}

// Session is the decoded per-request session. It is request-scoped: handlers
// read it from the incoming cookie, mutate it, and commit or destroy it on
// the response.
type Session struct {
	// Token is the backend bearer token, empty for anonymous visitors.
	Token string

	flashError string
}

// HasToken reports whether the visitor holds a bearer token.
func (s *Session) HasToken() bool {
	return s.Token != ""
}

// Flash stores a one-shot error message, replacing any pending one.
func (s *Session) Flash(msg string) {
	s.flashError = msg
}

// ConsumeError returns the pending flash error and clears it. The committed
// cookie after a consuming render no longer carries the message.
func (s *Session) ConsumeError() string {
	msg := s.flashError
	s.flashError = ""
	return msg
}

// Store encodes sessions into the cookie and back. Multiple secrets are
// supported for rotation: the first secret signs new cookies, every secret is
// tried when decoding.
type Store struct {
	codecs []securecookie.Codec
}

// NewStore derives cookie codecs from the configured secrets, newest first.
func NewStore(secrets []string) *Store {
	codecs := make([]securecookie.Codec, 0, len(secrets))
	for _, secret := range secrets {
		hashKey := sha256.Sum256([]byte("hash:" + secret))
		blockKey := sha256.Sum256([]byte("block:" + secret))

		sc := securecookie.New(hashKey[:], blockKey[:])
		sc.MaxAge(MaxAge)
		codecs = append(codecs, sc)
	}

	return &Store{codecs: codecs}
}

// Get decodes the session from the request cookie. A missing, expired or
// tampered cookie yields an empty anonymous session, never an error.
func (st *Store) Get(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return &Session{}
	}

	var p payload
	if err := securecookie.DecodeMulti(CookieName, cookie.Value, &p, st.codecs...); err != nil {
		return &Session{}
	}

	return &Session{Token: p.Token, flashError: p.FlashError}
}

// Commit writes the session back to the response. Must be called before the
// response body is written.
func (st *Store) Commit(w http.ResponseWriter, s *Session) error {
	encoded, err := securecookie.EncodeMulti(CookieName, payload{
		Token:      s.Token,
		FlashError: s.flashError,
	}, st.codecs...)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   MaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy expires the cookie, dropping token and flash alike.
func (st *Store) Destroy(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
