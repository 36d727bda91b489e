package handlers

import (
	"io"
	"net/http"

	"multimodal-server/internal/domain/apperrors"
	"multimodal-server/internal/domain/dto"
	Iservices "multimodal-server/internal/domain/interfaces/services"
	"multimodal-server/internal/infra/logger"
)

// MetadataFileField is the fixed multipart field carrying an uploaded
// metadata document.
const MetadataFileField = "metadata"

type UserMetadataHandlers struct {
	Logger          *logger.Logger
	MetadataService Iservices.IUserMetadataService
}

func NewUserMetadataHandlers(logger *logger.Logger, metadataService Iservices.IUserMetadataService) *UserMetadataHandlers {
	return &UserMetadataHandlers{Logger: logger, MetadataService: metadataService}
}

// SaveMetadata persists one user's clinical metadata record. The record
// comes either from an uploaded JSON document under the metadata field or
// from inline form fields; the file wins when both are present.
func (h *UserMetadataHandlers) SaveMetadata(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")

	source, err := h.resolveSource(r)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	data, err := h.MetadataService.Save(userID, source)
	if err != nil {
		respondError(w, h.Logger, err)
		return
	}

	respondCreated(w, "User metadata saved successfully", data)
}

// resolveSource decides the file-vs-inline union once, up front. The inline
// branch accepts both urlencoded and multipart form fields.
func (h *UserMetadataHandlers) resolveSource(r *http.Request) (dto.MetadataSource, error) {
	form, err := parseMultipart(r)
	if err != nil {
		return dto.MetadataSource{}, err
	}
	if form == nil {
		if err := r.ParseForm(); err != nil {
			return dto.MetadataSource{}, apperrors.Wrap(apperrors.InvalidData, "malformed form body", err)
		}
	}

	if form != nil {
		headers := form.File[MetadataFileField]
		if len(headers) > 1 {
			return dto.MetadataSource{}, apperrors.New(apperrors.InvalidData,
				"only one metadata file is allowed")
		}
		if len(headers) == 1 {
			header := headers[0]
			src, err := header.Open()
			if err != nil {
				return dto.MetadataSource{}, apperrors.Wrap(apperrors.StorageError,
					"failed to open uploaded metadata file", err)
			}
			defer src.Close()

			content, err := io.ReadAll(src)
			if err != nil {
				return dto.MetadataSource{}, apperrors.Wrap(apperrors.StorageError,
					"failed to read uploaded metadata file", err)
			}
			return dto.FromFile(content, header.Filename), nil
		}
	}

	return dto.FromFields(dto.InlineFields{
		Gender:     r.FormValue("gender"),
		Age:        r.FormValue("age"),
		Occupation: r.FormValue("occupation"),
		GAD7Result: r.FormValue("gad7_result"),
		PHQ9Result: r.FormValue("phq9_result"),
	}), nil
}
