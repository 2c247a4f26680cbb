package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/match3-server/internal/match3"
	"github.com/vancomm/match3-server/internal/repository"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusFor maps engine and store errors to response codes.
func statusFor(err error) int {
	var ce *match3.ConfigError
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrNoMove):
		return http.StatusNotFound
	case errors.Is(err, match3.ErrOutOfBounds),
		errors.Is(err, match3.ErrNotAdjacent),
		errors.Is(err, match3.ErrUnknownTool),
		errors.As(err, &ce):
		return http.StatusBadRequest
	case errors.Is(err, match3.ErrGameOver),
		errors.Is(err, match3.ErrToolUnavailable),
		errors.Is(err, match3.ErrLevelNotWon):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func sendError(w http.ResponseWriter, log *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sendJSONOrLog(w, log, wrapError(err))
}
