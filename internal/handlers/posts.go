package handlers

import (
	"net/http"

	"github.com/diewo77/go-press/auth"
	"github.com/diewo77/go-press/httpx"
	"github.com/diewo77/go-press/internal/services"
	"github.com/diewo77/go-press/validation"
	"github.com/sirupsen/logrus"
)

type createPostRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Content       string  `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CoverImageURL *string `json:"cover_image_url"`
	Published     bool    `json:"published"`
	CategoryID    uint    `json:"category_id"`
}

func (req *createPostRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("title", req.Title, v)
	validation.MaxLen("title", req.Title, 255, v)
	validation.Required("slug", req.Slug, v)
	validation.Slug("slug", req.Slug, v)
	validation.Required("content", req.Content, v)
	validation.PositiveID("category_id", req.CategoryID, v)
	return v
}

type updatePostRequest struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CoverImageURL *string `json:"cover_image_url"`
	Published     *bool   `json:"published"`
	CategoryID    *uint   `json:"category_id"`
}

func (req *updatePostRequest) Validate() validation.Violations {
	v := make(validation.Violations)
	validation.NotBlank("title", req.Title, v)
	validation.NotBlank("slug", req.Slug, v)
	if req.Slug != nil {
		validation.Slug("slug", *req.Slug, v)
	}
	validation.NotBlank("content", req.Content, v)
	if req.CategoryID != nil {
		validation.PositiveID("category_id", *req.CategoryID, v)
	}
	return v
}

type PostHandler struct {
	posts *services.PostService
	log   logrus.FieldLogger
}

func NewPostHandler(posts *services.PostService, log logrus.FieldLogger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	post, err := h.posts.GetBySlug(r.Context(), actor, r.PathValue("slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	var req createPostRequest
	if !decode(w, r, &req) {
		return
	}
	post, err := h.posts.Create(r.Context(), actor, services.CreatePostInput(req))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	var req updatePostRequest
	if !decode(w, r, &req) {
		return
	}
	post, err := h.posts.Update(r.Context(), actor, r.PathValue("slug"), services.UpdatePostInput(req))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	if err := h.posts.Delete(r.Context(), actor, r.PathValue("slug")); err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.NoContent(w)
}

func (h *PostHandler) Publish(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	post, err := h.posts.Publish(r.Context(), actor, r.PathValue("slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	post, err := h.posts.Unpublish(r.Context(), actor, r.PathValue("slug"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}
