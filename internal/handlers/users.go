package handlers

import (
	"net/http"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/httpx"
	"github.com/diewo77/go-press/internal/services"
	"github.com/diewo77/go-press/validation"
	"github.com/sirupsen/logrus"
)

type editUserRequest struct {
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

func (req *editUserRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.NotBlank("email", req.Email, v)
	if req.Email != nil {
		validation.Email("email", *req.Email, v)
	}
	validation.NotBlank("username", req.Username, v)
	validation.NotBlank("first_name", req.FirstName, v)
	validation.NotBlank("last_name", req.LastName, v)
	return v
}

type UserHandler struct {
	users *services.UserService
	log   logrus.FieldLogger
}

func NewUserHandler(users *services.UserService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	user, err := h.users.Me(r.Context(), actor)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	var req editUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.users.Edit(r.Context(), actor, services.EditUserInput(req))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.users.Delete(r.Context(), actor); err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.NoContent(w)
}
