package dto

// Metadata source tags. The wire value for inline fields matches the
// reference API ("json_data").
const (
	MetadataSourceFile   = "file"
	MetadataSourceInline = "json_data"
)

// InlineFields carries the raw form values of an inline metadata request.
// Values stay untyped here so the validator can report non-numeric and
// out-of-range fields in one combined message.
type InlineFields struct {
	Gender     string
	Age        string
	Occupation string
	GAD7Result string
	PHQ9Result string
}

// MetadataSource is the resolved input for one metadata request: either the
// raw bytes of an uploaded JSON document or the inline form fields. Exactly
// one branch is populated; an uploaded file wins when both were sent.
type MetadataSource struct {
	FileContent []byte
	Filename    string
	Fields      *InlineFields
}

// FromFile builds a file-backed source.
func FromFile(content []byte, filename string) MetadataSource {
	return MetadataSource{FileContent: content, Filename: filename}
}

// FromFields builds an inline-fields source.
func FromFields(fields InlineFields) MetadataSource {
	return MetadataSource{Fields: &fields}
}

// IsFile reports which branch of the union is populated.
func (s MetadataSource) IsFile() bool {
	return s.Fields == nil
}

// MetadataData is the data payload of a successful metadata response.
type MetadataData struct {
	UserID       string `json:"user_id"`
	MetadataPath string `json:"metadata_path"`
	CreatedAt    string `json:"created_at"`
	Source       string `json:"source"`
}
