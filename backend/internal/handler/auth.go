package handler

import (
	"net/http"

	"github.com/itchan-dev/kindboard/shared/api"
	"github.com/itchan-dev/kindboard/shared/domain"
	mw "github.com/itchan-dev/kindboard/shared/middleware"
	"github.com/itchan-dev/kindboard/shared/utils"
)

const accessTokenCookie = "accessToken"

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body api.CreateUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	authority := domain.Authority(body.Authority)
	if authority == domain.AuthorityAdmin {
		if acting := mw.GetUserFromContext(r); acting == nil || !acting.IsAdmin() {
			http.Error(w, "Only admins can create admin accounts", http.StatusForbidden)
			return
		}
	}

	user, err := h.user.Create(r.Context(), domain.UserCreationData{
		Username:  body.Username,
		Password:  body.Password,
		Authority: authority,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.NewUserResponse(user))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.user.Get(r.Context(), stringParam(r, "username"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewUserResponse(user))
}

// Me returns the user behind the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetUserFromContext(r)
	if claims == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	user, err := h.user.Get(r.Context(), claims.Username)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.NewUserResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	accessToken, err := h.user.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     accessTokenCookie,
		Value:    accessToken,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{AccessToken: accessToken})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     accessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusOK)
}
