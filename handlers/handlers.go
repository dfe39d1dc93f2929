package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"twitterapi/apperr"
	"twitterapi/auth"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondSuccess writes the uniform {"status":"success", ...} body used by
// mutation endpoints.
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// respondError funnels every failure into the uniform JSON error body.
// Business-rule failures keep their message; anything unclassified is logged
// and hidden behind a generic 500.
func respondError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if apperr.KindOf(err) == apperr.KindUnknown {
		logrus.WithError(err).Error("internal error")
		message = "internal server error"
	}
	respondJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// viewer pulls the identity context the auth middleware attached. Routes
// behind the middleware always have one; a missing viewer is a wiring bug.
func viewer(r *http.Request) *auth.Viewer {
	v, ok := auth.ViewerFromContext(r.Context())
	if !ok {
		logrus.Error("viewer missing from request context")
		return nil
	}
	return v
}
