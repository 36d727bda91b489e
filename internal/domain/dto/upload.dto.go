package dto

// UploadedFile describes one persisted artifact in the upload response.
type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
	Path         string `json:"path"`
}

// UploadData is the data payload of a successful ingestion response.
type UploadData struct {
	UserID        string                  `json:"user_id"`
	SessionID     string                  `json:"session_id"`
	TurnID        string                  `json:"turn_id"`
	Timestamp     string                  `json:"timestamp"`
	UploadedFiles map[string]UploadedFile `json:"uploaded_files"`
	FileCount     int                     `json:"file_count"`
	TotalSize     int64                   `json:"total_size"`
	TurnDir       string                  `json:"turn_dir"`
}

// SuccessResponse is the envelope for every 201 body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the envelope for every 4xx/5xx body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NotFoundResponse is the body returned for unmatched routes.
type NotFoundResponse struct {
	Error  string `json:"error"`
	Path   string `json:"path"`
	Method string `json:"method"`
}
