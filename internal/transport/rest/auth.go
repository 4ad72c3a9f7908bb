package rest

import (
	"errors"
	"net/http"

	"github.com/baigojahanzaib/ajj-sales/internal/auth"
	"github.com/baigojahanzaib/ajj-sales/pkg/web"
)

// Login authenticates a user and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto auth.LoginDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	session, err := h.auth.Login(r.Context(), dto)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			mLogger.WarnContext(r.Context(), "Login rejected", "email", dto.Email)
			web.RespondError(w, mLogger, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error during login", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to log in")
		return
	}
	mLogger.InfoContext(r.Context(), "Login succeeded", "user_id", session.User.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, session)
}

// FindUsers lists all accounts for the admin panel.
func (h *Handler) FindUsers(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	users, err := h.auth.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving users", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, users)
}

// CreateUser creates a new sales rep or admin account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto auth.CreateUserDto
	if !decodeValid(h, w, r, mLogger, &dto) {
		return
	}

	created, err := h.auth.CreateUser(r.Context(), dto)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			web.RespondError(w, mLogger, http.StatusConflict, "Email is already taken")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating user", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create user")
		return
	}
	mLogger.InfoContext(r.Context(), "User created", "user_id", created.ID, "role", created.Role)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}
