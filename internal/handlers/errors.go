package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-press/httpx"
	"github.com/diewo77/go-press/internal/services"
	"github.com/diewo77/go-press/validation"
	"github.com/sirupsen/logrus"
)

var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrAlreadyTaken, http.StatusConflict, "already_taken"},
	{services.ErrEmailAlreadyTaken, http.StatusConflict, "email_already_taken"},
	{services.ErrSlugAlreadyExists, http.StatusConflict, "slug_already_exists"},
	{services.ErrCategoryInUse, http.StatusConflict, "category_in_use"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{services.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
	{services.ErrInsufficientRole, http.StatusForbidden, "insufficient_role"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{services.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{services.ErrCategoryNotFound, http.StatusNotFound, "category_not_found"},
	{services.ErrPostNotFound, http.StatusNotFound, "post_not_found"},
	{services.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{services.ErrPasswordTooLong, http.StatusBadRequest, "password_too_long"},
}

// writeError maps a service error kind to its response. Unknown errors are
// logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			httpx.JSONError(w, e.status, e.code, nil)
			return
		}
	}
	log.WithError(err).Error("request failed")
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

// decode reads the JSON body into dst and validates it. It writes the 400
// response itself and returns false when the request cannot proceed.
func decode(w http.ResponseWriter, r *http.Request, dst interface{ Validate() validation.Violations }) bool {
	if err := httpx.Decode(r, dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	if v := dst.Validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return false
	}
	return true
}
