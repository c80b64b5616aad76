package handler

import (
	"context"
	"errors"
	"net/http"

	"portableworkout-web/internal/auth"
	"portableworkout-web/internal/middleware"
	"portableworkout-web/internal/observability"
	"portableworkout-web/internal/session"
	"portableworkout-web/internal/shopapi"
	"portableworkout-web/internal/view"
)

// AuthAPI is the slice of the backend client the auth pages need.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, req shopapi.RegisterRequest) error
}

// AuthHandler serves the login, registration and logout pages. Credentials
// pass straight through to the backend; nothing about them is stored here.
type AuthHandler struct {
	api      AuthAPI
	store    *session.Store
	renderer *view.Renderer
}

// NewAuthHandler creates the auth page handler.
func NewAuthHandler(api AuthAPI, store *session.Store, renderer *view.Renderer) *AuthHandler {
	return &AuthHandler{
		api:      api,
		store:    store,
		renderer: renderer,
	}
}

// LoginPage renders the login form. A signed-in visitor has no business here
// and is sent home.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Get(r)
	if sess.HasToken() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	flash := sess.ConsumeError()
	if err := h.store.Commit(w, sess); err != nil {
		observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
	}

	h.renderer.Render(w, r, http.StatusOK, "login", view.LoginData{
		Base:       view.Base{Title: "Login"},
		FlashError: flash,
	})
}

// Login submits credentials to the backend and starts a session. A visitor
// who already holds a token is bounced like on the GET page: the session is
// the source of truth and must not be silently replaced.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.store.Get(r).HasToken() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := auth.ParseLoginForm(r)
	if !form.Valid() {
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, "login", view.LoginData{
			Base:   view.Base{Title: "Login"},
			Email:  form.Email,
			Errors: form.Errors,
		})
		return
	}

	token, err := h.api.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		sess := h.store.Get(r)
		if errors.Is(err, shopapi.ErrUnauthorized) {
			sess.Flash("Invalid username/password")
		} else {
			observability.FromContext(r.Context()).Error("Login request failed", "error", err)
			sess.Flash("Something went wrong, please try again")
		}
		if err := h.store.Commit(w, sess); err != nil {
			observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess := h.store.Get(r)
	sess.Token = token
	if err := h.store.Commit(w, sess); err != nil {
		observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	sess := h.store.Get(r)
	if sess.HasToken() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	flash := sess.ConsumeError()
	if err := h.store.Commit(w, sess); err != nil {
		observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
	}

	h.renderer.Render(w, r, http.StatusOK, "register", view.RegisterData{
		Base:       view.Base{Title: "Register"},
		FlashError: flash,
	})
}

// Register validates the form locally, then creates the account on the
// backend. Field problems re-render in place; backend rejections flash and
// round-trip so the visitor can retry.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.store.Get(r).HasToken() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := auth.ParseRegisterForm(r)
	if !form.Valid() {
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, "register", view.RegisterData{
			Base: view.Base{Title: "Register"},
			Form: form,
		})
		return
	}

	if err := h.api.Register(r.Context(), form.Request()); err != nil {
		observability.FromContext(r.Context()).Error("Registration request failed", "error", err)

		sess := h.store.Get(r)
		sess.Flash("Could not create the account, please try again")
		if err := h.store.Commit(w, sess); err != nil {
			observability.FromContext(r.Context()).Error("Failed to commit session", "error", err)
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LogoutPage shows the confirmation prompt. Behind RequireAuth.
func (h *AuthHandler) LogoutPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "logout", view.UserData{
		Base: view.Base{Title: "Logout", LoggedIn: true},
		User: middleware.UserFrom(r.Context()),
	})
}

// Logout drops the session cookie and lands on the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Destroy(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard renders the signed-in landing page. Behind RequireAuth.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "dashboard", view.UserData{
		Base: view.Base{Title: "Dashboard", LoggedIn: true},
		User: middleware.UserFrom(r.Context()),
	})
}

// Account renders the profile details page. Behind RequireAuth.
func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "account", view.UserData{
		Base: view.Base{Title: "Account", LoggedIn: true},
		User: middleware.UserFrom(r.Context()),
	})
}
