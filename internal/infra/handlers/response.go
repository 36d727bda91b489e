package handlers

import (
	"encoding/json"
	"net/http"

	"multimodal-server/internal/domain/apperrors"
	"multimodal-server/internal/domain/dto"
	"multimodal-server/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// MaxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temporary files.
const MaxMultipartMemory = 32 << 20

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondCreated(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError classifies err and writes the matching {error, message} body.
// Validation failures keep their message; storage and internal failures are
// logged with the cause and answered with a generic message.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := apperrors.From(err)

	message := appErr.Message
	if appErr.Status() >= http.StatusInternalServerError {
		log.Error("Request failed", logrus.Fields{
			"kind":  string(appErr.Kind),
			"error": appErr.Error(),
		})
		message = "An unexpected error occurred"
	}

	respondJSON(w, appErr.Status(), dto.ErrorResponse{
		Error:   appErr.Label(),
		Message: message,
	})
}
