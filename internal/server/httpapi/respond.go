package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dwitter/internal/common"
	"github.com/dmitrijs2005/dwitter/internal/logging"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeServiceError maps a service error to a status. notFound is the message
// used for common.ErrorNotFound, which differs between endpoints. Anything
// unrecognized is logged and answered with a bare 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorForbidden):
		writeMessage(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, authErrorMessage)
	default:
		logger.Error(ctx, "request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}
