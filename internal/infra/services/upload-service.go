package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"multimodal-server/internal/domain/apperrors"
	"multimodal-server/internal/domain/dto"
	"multimodal-server/internal/domain/entities"
	"multimodal-server/internal/domain/interfaces/repository"
	"multimodal-server/internal/infra/logger"
)

// MaxIngestFiles caps the recognized files in one ingestion request, one per
// role.
const MaxIngestFiles = 3

// isoTimestamp matches the reference API's ISO-8601 timestamps, millisecond
// precision.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

type UploadService struct {
	Store       repository.Store
	Logger      *logger.Logger
	MaxFileSize int64
}

func NewUploadService(store repository.Store, logger *logger.Logger, maxFileSize int64) *UploadService {
	return &UploadService{Store: store, Logger: logger, MaxFileSize: maxFileSize}
}

// Ingest validates the buffered multipart form against the three upload
// roles, resolves the turn directory for the identity triple and persists
// every accepted file. All validation runs before the first byte is written,
// so a rejected request leaves no directory or file behind.
func (s *UploadService) Ingest(identity entities.Identity, form *multipart.Form) (dto.UploadData, error) {
	if identity.UserID == "" || identity.SessionID == "" || identity.TurnID == "" {
		return dto.UploadData{}, apperrors.New(apperrors.MissingIdentity,
			"X-User-ID, X-Session-ID, X-Turn-ID headers are required")
	}

	parts, err := s.collectParts(form)
	if err != nil {
		return dto.UploadData{}, err
	}

	for role, header := range parts {
		if err := s.validatePart(role, header); err != nil {
			return dto.UploadData{}, err
		}
	}

	dir, err := s.Store.EnsureDir(identity.UserID, identity.SessionID, identity.TurnID)
	if err != nil {
		return dto.UploadData{}, err
	}

	uploaded := make(map[string]dto.UploadedFile, len(parts))
	var totalSize int64

	for _, role := range entities.Roles {
		header, ok := parts[role]
		if !ok {
			continue
		}

		artifact, err := s.writePart(dir, role, header)
		if err != nil {
			return dto.UploadData{}, err
		}

		uploaded[string(role)] = dto.UploadedFile{
			Filename:     artifact.Filename,
			OriginalName: artifact.OriginalName,
			Size:         artifact.Size,
			MimeType:     artifact.MimeType,
			Path:         artifact.Path,
		}
		totalSize += artifact.Size

		s.Logger.Info("Stored artifact", logrus.Fields{
			"role": string(role),
			"file": artifact.Filename,
			"size": artifact.Size,
		})
	}

	return dto.UploadData{
		UserID:        identity.UserID,
		SessionID:     identity.SessionID,
		TurnID:        identity.TurnID,
		Timestamp:     time.Now().UTC().Format(isoTimestamp),
		UploadedFiles: uploaded,
		FileCount:     len(uploaded),
		TotalSize:     totalSize,
		TurnDir:       dir,
	}, nil
}

// collectParts maps the form's recognized fields to their single file each.
// Unknown field names are ignored; they carry no role and do not count
// against the file ceiling.
func (s *UploadService) collectParts(form *multipart.Form) (map[entities.Role]*multipart.FileHeader, error) {
	parts := make(map[entities.Role]*multipart.FileHeader)
	if form == nil {
		return parts, nil
	}

	total := 0
	for field, headers := range form.File {
		role, ok := entities.ParseRole(field)
		if !ok {
			continue
		}
		if len(headers) == 0 {
			continue
		}
		total += len(headers)
		if len(headers) > 1 {
			return nil, apperrors.Newf(apperrors.InvalidData,
				"only one file is allowed for %s", role)
		}
		parts[role] = headers[0]
	}

	if total > MaxIngestFiles {
		return nil, apperrors.Newf(apperrors.InvalidData,
			"at most %d files are allowed per request", MaxIngestFiles)
	}
	return parts, nil
}

func (s *UploadService) validatePart(role entities.Role, header *multipart.FileHeader) error {
	if !role.AcceptsFilename(header.Filename) {
		return apperrors.Newf(apperrors.InvalidFileType,
			"Invalid file type for %s. Allowed: %s",
			role, strings.Join(role.AllowedExtensions(), ", "))
	}
	if header.Size > s.MaxFileSize {
		return apperrors.Newf(apperrors.FileTooLarge,
			"Maximum file size is %s", humanize.IBytes(uint64(s.MaxFileSize)))
	}
	return nil
}

// writePart buffers one validated part and hands it to the store. A failed
// read or write surfaces as a storage error and produces no artifact record.
func (s *UploadService) writePart(dir string, role entities.Role, header *multipart.FileHeader) (entities.StoredArtifact, error) {
	src, err := header.Open()
	if err != nil {
		return entities.StoredArtifact{}, apperrors.Wrap(apperrors.StorageError,
			fmt.Sprintf("failed to open uploaded %s file", role), err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return entities.StoredArtifact{}, apperrors.Wrap(apperrors.StorageError,
			fmt.Sprintf("failed to read uploaded %s file", role), err)
	}

	path, size, err := s.Store.WriteFile(dir, header.Filename, content)
	if err != nil {
		return entities.StoredArtifact{}, err
	}

	return entities.StoredArtifact{
		Role:         role,
		Filename:     filepath.Base(path),
		OriginalName: header.Filename,
		Size:         size,
		MimeType:     mimetype.Detect(content).String(),
		Path:         path,
	}, nil
}
