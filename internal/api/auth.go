package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/store"
)

// Principal identifies the authenticated caller. It is resolved once per
// request from the session and passed through the request context; handlers
// never read the session directly.
type Principal struct {
	UserID  int64
	IsAdmin bool
}

type contextKey string

const principalContextKey contextKey = "principal"

const (
	sessionKeyUserID  = "userID"
	sessionKeyIsAdmin = "isAdmin"
)

// withPrincipal attaches the session's principal to the request context when
// a session exists. Anonymous requests pass through untouched.
func (h *HTTPHandler) withPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := h.sessions.GetInt64(r.Context(), sessionKeyUserID)
		if userID > 0 {
			principal := Principal{
				UserID:  userID,
				IsAdmin: h.sessions.GetBool(r.Context(), sessionKeyIsAdmin),
			}
			r = r.WithContext(context.WithValue(r.Context(), principalContextKey, principal))
		}
		next.ServeHTTP(w, r)
	})
}

func principalFrom(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(Principal)
	return principal, ok
}

// requireUser rejects anonymous requests with 401.
func (h *HTTPHandler) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := principalFrom(r.Context()); !ok {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

// requireAdmin rejects anonymous requests with 401 and authenticated
// non-admins with 403.
func (h *HTTPHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFrom(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !principal.IsAdmin {
			respondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Auth Handlers ---

// RegisterInput defines the expected input for account creation.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *HTTPHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.stores.Identity.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondWithError(w, http.StatusConflict, store.ErrUserExists.Error())
		} else if errors.Is(err, store.ErrPasswordTooShort) {
			respondWithError(w, http.StatusBadRequest, store.ErrPasswordTooShort.Error())
		} else {
			log.Printf("ERROR: RegisterUser store operation failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	// New accounts are signed in immediately.
	if err := h.startSession(r, user.ID, user.IsAdmin); err != nil {
		log.Printf("ERROR: RegisterUser failed to start session: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// LoginInput defines the expected input for signing in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, err := h.stores.Identity.Authenticate(r.Context(), input.Username, input.Password)
	if err != nil {
		log.Printf("ERROR: Login store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	if user == nil {
		// Unknown username and wrong password produce the same answer.
		respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := h.startSession(r, user.ID, user.IsAdmin); err != nil {
		log.Printf("ERROR: Login failed to start session: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// startSession rotates the session token and binds it to the user. Token
// renewal on privilege change prevents session fixation.
func (h *HTTPHandler) startSession(r *http.Request, userID int64, isAdmin bool) error {
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sessions.Put(r.Context(), sessionKeyUserID, userID)
	h.sessions.Put(r.Context(), sessionKeyIsAdmin, isAdmin)
	return nil
}

func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		log.Printf("ERROR: Logout failed to destroy session: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

func (h *HTTPHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	user, err := h.stores.Identity.GetUserByID(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// The account behind this session is gone; the session is dead.
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		log.Printf("ERROR: CurrentUser store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
