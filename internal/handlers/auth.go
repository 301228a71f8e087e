package handlers

import (
	"errors"
	"net/http"
	"strings"

	"collegeadmin/internal/apiclient"
	"collegeadmin/internal/editor"
	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/services"
	"collegeadmin/internal/session"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	drafts      *editor.Store
	view        *View
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager, drafts *editor.Store, view *View) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		drafts:      drafts,
		view:        view,
	}
}

type loginPage struct {
	Email string
	Next  string
}

// safeNext пропускает только локальные пути, чтобы ?next= не уводил на чужой сайт.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/colleges"
	}
	return next
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.User(r); ok {
		redirect(w, r, "/colleges")
		return
	}
	h.view.render(w, r, http.StatusOK, "login", Page{
		Title: "Login",
		Data:  loginPage{Next: r.URL.Query().Get("next")},
	})
}

// authMessage готовит текст для пользователя: ошибки валидации как есть, ответ бэкенда как есть.
func authMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrEmptyPassword),
		errors.Is(err, services.ErrPasswordTooWeak), errors.Is(err, services.ErrEmptyName):
		return err.Error()
	}
	return "Something went wrong"
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, "/auth/login")
		return
	}
	email := formValue(r, "email")
	next := r.FormValue("next")
	logger.WithCtx(r.Context()).Info("Попытка входа", zap.String("email", email))

	u, err := h.authService.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		h.view.failure(w, r, "Login failed: "+authMessage(err), nil)
		h.view.render(w, r, http.StatusUnauthorized, "login", Page{
			Title: "Login",
			Data:  loginPage{Email: email, Next: next},
		})
		return
	}

	if err := h.sessions.Login(w, r, u); err != nil {
		logger.WithCtx(r.Context()).Error("Не удалось сохранить сессию", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	logger.WithCtx(r.Context()).Info("Вход выполнен", zap.String("user_id", u.ID), zap.String("role", u.Role))
	h.view.success(w, r, "Login successful")
	redirect(w, r, safeNext(next))
}

type signUpPage struct {
	Name  string
	Email string
}

func (h *AuthHandler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, "signup", Page{Title: "Sign up", Data: signUpPage{}})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.failure(w, r, "Invalid form", err)
		redirect(w, r, "/auth/signup")
		return
	}
	in := models.SignUpRequest{
		Name:     formValue(r, "name"),
		Email:    formValue(r, "email"),
		Password: r.FormValue("password"),
		Role:     formValue(r, "role"),
	}
	if err := h.authService.SignUp(r.Context(), in); err != nil {
		h.view.failure(w, r, "Sign up failed: "+authMessage(err), nil)
		h.view.render(w, r, http.StatusUnprocessableEntity, "signup", Page{
			Title: "Sign up",
			Data:  signUpPage{Name: in.Name, Email: in.Email},
		})
		return
	}
	h.view.success(w, r, "Account created. You can log in now.")
	redirect(w, r, "/auth/login")
}

// Logout стирает сессию и выбрасывает черновики редактора этой сессии.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, err := h.sessions.Logout(w, r)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("Ошибка при выходе", zap.Error(err))
	}
	if sid != "" {
		n := h.drafts.CloseSession(sid)
		logger.WithCtx(r.Context()).Info("Выход выполнен", zap.Int("drafts_closed", n))
	}
	redirect(w, r, "/auth/login")
}
