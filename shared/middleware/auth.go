package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/kindboard/shared/domain"
	jwt_internal "github.com/itchan-dev/kindboard/shared/jwt"
	"github.com/itchan-dev/kindboard/shared/logger"
	"github.com/itchan-dev/kindboard/shared/utils"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// extractUser reads the token from the accessToken cookie or the
// Authorization header and builds the acting user from its claims.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if accessCookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = accessCookie.Value
	}
	// a cleared cookie must not hide the header
	if tokenString == "" {
		if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
			tokenString = token
		}
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	uidFloat, ok := claims["uid"].(float64)
	if !ok {
		return nil, errInvalidClaims
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, errInvalidClaims
	}
	authority, ok := claims["authority"].(string)
	if !ok || !domain.Authority(authority).Valid() {
		return nil, errInvalidClaims
	}

	return &domain.User{
		Id:        int64(uidFloat),
		Username:  username,
		Authority: domain.Authority(authority),
	}, nil
}

var (
	errNoToken       = errors.New("no token")
	errInvalidClaims = errors.New("invalid claims")
)

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				switch {
				case errors.Is(err, errNoToken):
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errors.Is(err, errInvalidClaims):
					logger.FromContext(r.Context()).Error("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			if adminOnly && !user.IsAdmin() {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user when a valid token is presented and
// otherwise passes the request through anonymously.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if !errors.Is(err, errNoToken) {
					logger.FromContext(r.Context()).Debug("ignoring invalid token", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, WithUser(r, user))
		})
	}
}

// GetUserFromContext retrieves the user put there by NeedAuth/AdminOnly.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// WithUser is used by tests and internal callers to attach an acting user.
func WithUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserClaimsKey, user))
}
