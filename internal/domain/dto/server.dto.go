package dto

// ServerConfig is the limits section of the root listing.
type ServerConfig struct {
	MaxFileSize string `json:"maxFileSize"`
	UploadDir   string `json:"uploadDir"`
	ExternalURL string `json:"externalUrl"`
}

// ServerInfo is the root listing body: server identity, version and the
// configured upload limits.
type ServerInfo struct {
	Message string       `json:"message"`
	Version string       `json:"version"`
	Config  ServerConfig `json:"config"`
}
