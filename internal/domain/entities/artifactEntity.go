package entities

// Identity is the (user, session, turn) triple that keys one conversational
// turn's namespace.
type Identity struct {
	UserID    string
	SessionID string
	TurnID    string
}

// StoredArtifact records one file fully persisted under a turn directory.
type StoredArtifact struct {
	Role         Role
	Filename     string
	OriginalName string
	Size         int64
	MimeType     string
	Path         string
}
