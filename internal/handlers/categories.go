package handlers

import (
	"net/http"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/httpx"
	"github.com/diewo77/go-press/internal/services"
	"github.com/diewo77/go-press/validation"
	"github.com/sirupsen/logrus"
)

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

func (req *createCategoryRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.MaxLen("name", req.Name, 255, v)
	validation.Required("slug", req.Slug, v)
	validation.Slug("slug", req.Slug, v)
	return v
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

func (req *updateCategoryRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.NotBlank("name", req.Name, v)
	validation.NotBlank("slug", req.Slug, v)
	if req.Slug != nil {
		validation.Slug("slug", *req.Slug, v)
	}
	return v
}

type CategoryHandler struct {
	categories *services.CategoryService
	log        logrus.FieldLogger
}

func NewCategoryHandler(categories *services.CategoryService, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	var req createCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	category, err := h.categories.Create(r.Context(), actor, services.CreateCategoryInput(req))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	var req updateCategoryRequest
	if !decode(w, r, &req) {
		return
	}
	category, err := h.categories.Update(r.Context(), actor, r.PathValue("slug"), services.UpdateCategoryInput(req))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.categories.Delete(r.Context(), actor, r.PathValue("slug")); err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.NoContent(w)
}
