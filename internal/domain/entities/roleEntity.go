package entities

import (
	"path/filepath"
	"strings"
)

// Role is one of the fixed upload slots accepted by the ingestion endpoint.
type Role string

const (
	RoleVideo     Role = "video"
	RoleAudio     Role = "audio"
	RoleUtterance Role = "utterance"
)

// Roles lists the known slots in response order.
var Roles = []Role{RoleVideo, RoleAudio, RoleUtterance}

var allowedExtensions = map[Role][]string{
	RoleVideo:     {".mp4", ".avi", ".mov", ".wmv", ".webm"},
	RoleAudio:     {".mp3", ".wav", ".ogg", ".m4a", ".aac"},
	RoleUtterance: {".json"},
}

// ParseRole maps a multipart field name to a known role. Field names outside
// the enumeration are not an error; callers ignore them.
func ParseRole(field string) (Role, bool) {
	switch Role(field) {
	case RoleVideo, RoleAudio, RoleUtterance:
		return Role(field), true
	}
	return "", false
}

// AllowedExtensions returns the extension whitelist for the role.
func (r Role) AllowedExtensions() []string {
	return allowedExtensions[r]
}

// AcceptsFilename reports whether the filename's extension is in the role's
// whitelist. The comparison is case-insensitive.
func (r Role) AcceptsFilename(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range allowedExtensions[r] {
		if ext == allowed {
			return true
		}
	}
	return false
}
