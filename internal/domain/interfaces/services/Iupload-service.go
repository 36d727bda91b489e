package Iservices

import (
	"mime/multipart"

	"multimodal-server/internal/domain/dto"
	"multimodal-server/internal/domain/entities"
)

// IUploadService runs the ingestion pipeline for one request: validate the
// buffered multipart form, resolve the turn directory and persist every
// accepted file.
type IUploadService interface {
	Ingest(identity entities.Identity, form *multipart.Form) (dto.UploadData, error)
}
