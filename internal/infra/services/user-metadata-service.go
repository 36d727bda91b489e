package services

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"multimodal-server/internal/domain/apperrors"
	"multimodal-server/internal/domain/dto"
	"multimodal-server/internal/domain/entities"
	"multimodal-server/internal/domain/interfaces/repository"
	"multimodal-server/internal/infra/logger"
)

// DefaultMetadataFilename is used when the record comes from inline fields
// or an unnamed upload.
const DefaultMetadataFilename = "user_metadata.json"

// MaxMetadataFileSize is the ceiling for an uploaded metadata document.
const MaxMetadataFileSize = 10 << 20

type UserMetadataService struct {
	Store       repository.Store
	Logger      *logger.Logger
	MaxFileSize int64
}

func NewUserMetadataService(store repository.Store, logger *logger.Logger, maxFileSize int64) *UserMetadataService {
	return &UserMetadataService{Store: store, Logger: logger, MaxFileSize: maxFileSize}
}

// Save validates the resolved metadata source and writes the canonical
// record under the user's directory. The record gets its created_at at write
// time; a later request for the same user overwrites the whole file.
func (s *UserMetadataService) Save(userID string, source dto.MetadataSource) (dto.MetadataData, error) {
	if userID == "" {
		return dto.MetadataData{}, apperrors.New(apperrors.MissingIdentity,
			"X-User-ID header is required")
	}

	filename := DefaultMetadataFilename
	sourceTag := dto.MetadataSourceInline

	var record map[string]any
	if source.IsFile() {
		sourceTag = dto.MetadataSourceFile
		if source.Filename != "" {
			filename = source.Filename
		}

		parsed, err := s.parseFile(source)
		if err != nil {
			return dto.MetadataData{}, err
		}
		record = parsed
	} else {
		parsed, err := s.parseInline(*source.Fields)
		if err != nil {
			return dto.MetadataData{}, err
		}
		record = parsed
	}

	createdAt := time.Now().UTC().Format(isoTimestamp)
	record["user_id"] = userID
	record["created_at"] = createdAt

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return dto.MetadataData{}, apperrors.Wrap(apperrors.InternalError,
			"failed to serialize metadata record", err)
	}

	dir, err := s.Store.EnsureDir(userID)
	if err != nil {
		return dto.MetadataData{}, err
	}

	path, _, err := s.Store.WriteFile(dir, filename, payload)
	if err != nil {
		return dto.MetadataData{}, err
	}

	s.Logger.Info("Saved user metadata", logrus.Fields{
		"user_id": userID,
		"source":  sourceTag,
		"path":    path,
	})

	return dto.MetadataData{
		UserID:       userID,
		MetadataPath: path,
		CreatedAt:    createdAt,
		Source:       sourceTag,
	}, nil
}

// parseFile checks the uploaded document's extension, size and syntax, then
// range-checks the known clinical fields. Unknown keys are kept and persist
// as-is. A parse failure short-circuits the range checks.
func (s *UserMetadataService) parseFile(source dto.MetadataSource) (map[string]any, error) {
	if !strings.EqualFold(filepath.Ext(source.Filename), ".json") {
		return nil, apperrors.New(apperrors.InvalidFileType, "Only JSON files are allowed")
	}
	if int64(len(source.FileContent)) > s.MaxFileSize {
		return nil, apperrors.Newf(apperrors.FileTooLarge,
			"Maximum file size is %s", humanize.IBytes(uint64(s.MaxFileSize)))
	}

	var record map[string]any
	if err := json.Unmarshal(source.FileContent, &record); err != nil {
		return nil, apperrors.New(apperrors.InvalidJSON,
			"The uploaded file is not a valid JSON file")
	}

	if errs := entities.ValidateRecord(record); len(errs) > 0 {
		return nil, apperrors.New(apperrors.InvalidData, strings.Join(errs, ", "))
	}
	return record, nil
}

// parseInline converts the raw form values into the typed record,
// accumulating non-numeric and out-of-range violations into one combined
// report. Absent fields persist as null.
func (s *UserMetadataService) parseInline(fields dto.InlineFields) (map[string]any, error) {
	var meta entities.UserMetadata
	var errs []string

	if fields.Gender != "" {
		meta.Gender = &fields.Gender
	}
	if fields.Occupation != "" {
		meta.Occupation = &fields.Occupation
	}
	meta.Age, errs = parseScore(fields.Age,
		"Invalid age (must be between 0-150)", errs)
	meta.GAD7Result, errs = parseScore(fields.GAD7Result,
		"Invalid GAD-7 result (must be between 0-21)", errs)
	meta.PHQ9Result, errs = parseScore(fields.PHQ9Result,
		"Invalid PHQ-9 result (must be between 0-27)", errs)

	errs = append(errs, meta.Validate()...)
	if len(errs) > 0 {
		return nil, apperrors.New(apperrors.InvalidData, strings.Join(errs, ", "))
	}

	return map[string]any{
		"gender":      meta.Gender,
		"age":         meta.Age,
		"occupation":  meta.Occupation,
		"gad7_result": meta.GAD7Result,
		"phq9_result": meta.PHQ9Result,
	}, nil
}

// parseScore parses one optional numeric form value. A non-numeric value is
// flagged with the field's range message and skipped, so it is reported once.
func parseScore(value, message string, errs []string) (*int, []string) {
	if value == "" {
		return nil, errs
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, append(errs, message)
	}
	return &n, errs
}
