package domain

// ProfileTypeLinkedIn tags documents produced from profile records.
const ProfileTypeLinkedIn = "linkedin_profile"

// Metadata keys attached to every normalised document.
const (
	MetadataName        = "name"
	MetadataLinkedInURL = "linkedin_url"
	MetadataProfileType = "profile_type"
)

// Document is a profile flattened into its canonical searchable text.
// It is the output of normalisation and the input of chunking.
type Document struct {
	// ID is a deterministic identifier derived from the profile.
	ID string

	// Name is the source profile's display name.
	Name string

	// URL is the source profile's linkedin_url (may be empty).
	URL string

	// Content is the full normalised text before chunking.
	Content string

	// Metadata holds the name, linkedin_url and profile_type tags.
	Metadata map[string]string
}

// Chunk is a bounded-length fragment of a document's content.
// Chunks are owned by the semantic index and recomputed on every build.
type Chunk struct {
	// ID is a deterministic identifier derived from the document and position.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// SourceName is the display name of the profile the text came from.
	SourceName string

	// SourceURL is the linkedin_url of the profile the text came from.
	SourceURL string

	// Content is the text of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation used for similarity search.
	Embedding []float32
}

// ChunkHit is a retrieved chunk with its similarity to the query.
type ChunkHit struct {
	Chunk Chunk

	// Similarity is the cosine similarity between query and chunk (-1..1).
	Similarity float64
}
