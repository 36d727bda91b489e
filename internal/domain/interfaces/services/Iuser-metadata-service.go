package Iservices

import "multimodal-server/internal/domain/dto"

// IUserMetadataService validates and persists one user's clinical metadata
// record from a resolved source.
type IUserMetadataService interface {
	Save(userID string, source dto.MetadataSource) (dto.MetadataData, error)
}
