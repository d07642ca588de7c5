package schema

import "time"

const (
	// MetadataKeyFilename is the key for the source file name.
	MetadataKeyFilename = "filename"
	// MetadataKeyType is the key for the declared MIME type of the source.
	// The store indexes this field as a keyword so it can be filtered on.
	MetadataKeyType = "type"
	// MetadataKeySize is the key for the source size in bytes.
	MetadataKeySize = "size"
	// MetadataKeySourceURL is the key for the origin URL of web materials.
	MetadataKeySourceURL = "source_url"
)

// Document is the unit of storage and retrieval. A Document is immutable
// once stored: content and embeddings are derived together at indexing time
// and re-indexing the same ID replaces the whole entry.
type Document struct {
	// ID is the stable identifier, derived from the source filename.
	ID string `json:"id"`

	// Content is the extracted plain text. It is non-empty for any
	// successfully indexed document.
	Content string `json:"content"`

	// Embeddings is the vector representation of Content. It is empty
	// only when embedding generation failed, in which case the document
	// is reachable by lexical match only.
	Embeddings []float32 `json:"embeddings"`

	// Metadata holds at least filename, type and size of the source.
	Metadata map[string]interface{} `json:"metadata"`

	// Timestamp is the indexing time, set once.
	Timestamp time.Time `json:"timestamp"`
}

// MediaType returns the declared MIME type from the metadata, or "".
func (d *Document) MediaType() string {
	if d.Metadata == nil {
		return ""
	}
	t, _ := d.Metadata[MetadataKeyType].(string)
	return t
}

// Knowledge levels a learner can declare.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Learning preferences a learner can declare.
const (
	PreferText     = "text"
	PreferVideo    = "video"
	PreferImage    = "image"
	PreferExercise = "exercise"
)

// UserProfile is the session-scoped learner profile that steers generation.
// It is configuration, not a stored entity: it lives only as long as the
// session does.
type UserProfile struct {
	KnowledgeLevel     string `json:"knowledge_level"`
	LearningPreference string `json:"learning_preference"`

	// Difficulties are the free-text points the learner flagged as
	// confusing. The set grows across a session unless explicitly
	// cleared.
	Difficulties []string `json:"difficulties"`
}

// DefaultProfile returns the profile a fresh session starts with.
func DefaultProfile() *UserProfile {
	return &UserProfile{
		KnowledgeLevel:     LevelBeginner,
		LearningPreference: PreferText,
	}
}
