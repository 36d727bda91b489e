package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"multimodal-server/internal/domain/apperrors"
	"multimodal-server/internal/domain/entities"
	Iservices "multimodal-server/internal/domain/interfaces/services"
	"multimodal-server/internal/infra/logger"
)

type UploadHandlers struct {
	Logger        *logger.Logger
	UploadService Iservices.IUploadService
}

func NewUploadHandlers(logger *logger.Logger, uploadService Iservices.IUploadService) *UploadHandlers {
	return &UploadHandlers{Logger: logger, UploadService: uploadService}
}

// Upload ingests one conversational turn's artifacts. Identity comes from
// the X-User-ID, X-Session-ID and X-Turn-ID headers; files arrive as
// multipart parts under the video, audio and utterance fields. A request
// without any files is still a valid (empty) turn.
func (h *UploadHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	identity := entities.Identity{
		UserID:    r.Header.Get("X-User-ID"),
		SessionID: r.Header.Get("X-Session-ID"),
		TurnID:    r.Header.Get("X-Turn-ID"),
	}

	form, err := parseMultipart(r)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	data, err := h.UploadService.Ingest(identity, form)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	respondCreated(w, "Files uploaded successfully", data)
}

// parseMultipart buffers the request's multipart form. A non-multipart body
// is not an error; it simply carries no files.
func parseMultipart(r *http.Request) (*multipart.Form, error) {
	err := r.ParseMultipartForm(MaxMultipartMemory)
	switch {
	case err == nil:
		return r.MultipartForm, nil
	case errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, apperrors.Wrap(apperrors.InvalidData, "malformed multipart body", err)
	}
}
