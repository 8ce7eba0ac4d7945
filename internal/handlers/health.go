package handlers

import (
	"context"
	"net/http"

	"github.com/diewo77/go-press/httpx"
	"github.com/sirupsen/logrus"
)

// Health reports whether the store answers. ping is usually db.Ping bound to the connection.
func Health(ping func(context.Context) error, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			log.WithError(err).Warn("health check failed")
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
