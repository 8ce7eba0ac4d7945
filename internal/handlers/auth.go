package handlers

import (
	"net/http"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/httpx"
	"github.com/diewo77/go-press/internal/models"
	"github.com/diewo77/go-press/internal/services"
	"github.com/diewo77/go-press/validation"
	"github.com/sirupsen/logrus"
)

var roleNames = []string{string(models.RoleReader), string(models.RoleAuthor), string(models.RoleAdmin)}

type signupRequest struct {
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Role      string  `json:"role"`
}

func (req *signupRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("email", req.Email, v)
	validation.Email("email", req.Email, v)
	validation.Required("username", req.Username, v)
	validation.MaxLen("username", req.Username, 100, v)
	validation.Required("password", req.Password, v)
	validation.MaxBytes("password", req.Password, auth.MaxPasswordBytes, v)
	validation.Required("first_name", req.FirstName, v)
	validation.Required("last_name", req.LastName, v)
	validation.OneOf("role", req.Role, roleNames, v)
	return v
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *loginRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("email", req.Email, v)
	validation.Required("password", req.Password, v)
	return v
}

type AuthHandler struct {
	credentials *services.CredentialService
	log         logrus.FieldLogger
}

func NewAuthHandler(credentials *services.CredentialService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{credentials: credentials, log: log}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.credentials.Signup(r.Context(), services.SignupInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Role:      models.Role(req.Role),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.credentials.Login(r.Context(), services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.credentials.Logout(r.Context(), actor); err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
