// Package service is the facade of the learning service: it owns upload
// ingestion, search and adaptive explanation on behalf of the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"mentora/internal/rag/extractors"
	"mentora/internal/rag/generator"
	"mentora/internal/rag/indexer"
	"mentora/internal/rag/interfaces"
	"mentora/internal/rag/schema"
	"mentora/internal/session"
	"mentora/pkg/logger"
)

// maxFetchBytes bounds how much of a linked page is read.
const maxFetchBytes = 10 << 20

// ErrUnsupportedMedia mirrors the extractor sentinel for HTTP callers.
var ErrUnsupportedMedia = extractors.ErrUnsupportedMedia

// ErrNothingExtracted is returned when a file yields no text, so nothing
// was written to the index.
var ErrNothingExtracted = errors.New("no text could be extracted")

// Archiver stores the raw bytes of an upload. The MinIO client implements
// it; a nil Archiver disables archiving.
type Archiver interface {
	Archive(ctx context.Context, name string, data []byte, contentType string) error
}

// Service wires the extraction, indexing, retrieval and generation
// components behind one API.
type Service struct {
	dispatcher *extractors.Dispatcher
	indexer    *indexer.Indexer
	retriever  interfaces.Retriever
	generator  *generator.Generator
	store      interfaces.DocStore
	profiles   session.ProfileStore
	archive    Archiver
	httpClient *http.Client
	log        *logger.Logger
}

// NewService creates the service facade. archive may be nil.
func NewService(
	dispatcher *extractors.Dispatcher,
	idx *indexer.Indexer,
	retriever interfaces.Retriever,
	gen *generator.Generator,
	store interfaces.DocStore,
	profiles session.ProfileStore,
	archive Archiver,
	log *logger.Logger,
) *Service {
	return &Service{
		dispatcher: dispatcher,
		indexer:    idx,
		retriever:  retriever,
		generator:  gen,
		store:      store,
		profiles:   profiles,
		archive:    archive,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// UploadMaterial extracts, embeds and indexes one uploaded file. The
// declared MIME type wins; when the upload declares none the type is
// sniffed from content. The raw bytes are archived best-effort before
// extraction. A re-upload of a same-named file replaces the previous
// document.
func (s *Service) UploadMaterial(ctx context.Context, filename, declaredType string, data []byte) (*schema.Document, error) {
	mediaType := declaredType
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = extractors.DetectMediaType(data)
	}

	if s.archive != nil {
		if err := s.archive.Archive(ctx, filename, data, mediaType); err != nil {
			s.log.Warn(fmt.Sprintf("archiving '%s' failed: %v", filename, err))
		}
	}

	extractor, err := s.dispatcher.ForMediaType(mediaType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, mediaType)
	}

	content, err := extractor.Extract(ctx, data, mediaType)
	if err != nil {
		return nil, fmt.Errorf("extraction of '%s' failed: %w", filename, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w from '%s'", ErrNothingExtracted, filename)
	}

	doc := &schema.Document{
		ID:      filename,
		Content: content,
		Metadata: map[string]interface{}{
			schema.MetadataKeyFilename: filename,
			schema.MetadataKeyType:     mediaType,
			schema.MetadataKeySize:     len(data),
		},
		Timestamp: time.Now().UTC(),
	}

	if err := s.indexer.Ingest(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// IngestURL fetches a study-material link, converts the page to Markdown
// and indexes it like a file. The URL itself is the document id.
func (s *Service) IngestURL(ctx context.Context, rawURL string) (*schema.Document, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid material URL '%s'", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request for '%s': %w", rawURL, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch '%s': %w", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching '%s' returned %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("cannot read '%s': %w", rawURL, err)
	}

	extractor, err := s.dispatcher.ForMediaType(extractors.MediaTypeHTML)
	if err != nil {
		return nil, err
	}
	content, err := extractor.Extract(ctx, data, extractors.MediaTypeHTML)
	if err != nil {
		return nil, fmt.Errorf("extraction of '%s' failed: %w", rawURL, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w from '%s'", ErrNothingExtracted, rawURL)
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		name = parsed.Host
	}

	doc := &schema.Document{
		ID:      rawURL,
		Content: content,
		Metadata: map[string]interface{}{
			schema.MetadataKeyFilename:  name,
			schema.MetadataKeyType:      extractors.MediaTypeHTML,
			schema.MetadataKeySize:      len(data),
			schema.MetadataKeySourceURL: rawURL,
		},
		Timestamp: time.Now().UTC(),
	}

	if err := s.indexer.Ingest(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Search returns the top ranked materials for the query. typeFilter is
// optional; "" and "all" mean no restriction.
func (s *Service) Search(ctx context.Context, query, typeFilter string) ([]*schema.Document, error) {
	if strings.EqualFold(typeFilter, "all") {
		typeFilter = ""
	}
	return s.retriever.Retrieve(ctx, query, typeFilter)
}

// ListMaterials returns the indexed documents, newest first.
func (s *Service) ListMaterials(ctx context.Context) ([]*schema.Document, error) {
	return s.store.List(ctx)
}

// Explain produces the profile-adapted grounded explanation of a topic
// for the given session.
func (s *Service) Explain(ctx context.Context, sessionID, topic string) (*generator.Result, error) {
	profile, err := s.profiles.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("cannot load profile: %w", err)
	}
	return s.generator.Generate(ctx, profile, topic)
}

// GetProfile returns the session's profile, defaults included.
func (s *Service) GetProfile(ctx context.Context, sessionID string) (*schema.UserProfile, error) {
	return s.profiles.Get(ctx, sessionID)
}

// UpdateProfile replaces knowledge level and learning preference and
// merges the flagged difficulties into the existing set. Difficulties
// grow monotonically within a session; ClearDifficulties is the only way
// to shrink them.
func (s *Service) UpdateProfile(ctx context.Context, sessionID string, update *schema.UserProfile) (*schema.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("cannot load profile: %w", err)
	}

	if update.KnowledgeLevel != "" {
		profile.KnowledgeLevel = update.KnowledgeLevel
	}
	if update.LearningPreference != "" {
		profile.LearningPreference = update.LearningPreference
	}
	for _, d := range update.Difficulties {
		d = strings.TrimSpace(d)
		if d == "" || contains(profile.Difficulties, d) {
			continue
		}
		profile.Difficulties = append(profile.Difficulties, d)
	}

	if err := s.profiles.Save(ctx, sessionID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ClearDifficulties empties the session's flagged difficulties.
func (s *Service) ClearDifficulties(ctx context.Context, sessionID string) (*schema.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("cannot load profile: %w", err)
	}
	profile.Difficulties = nil
	if err := s.profiles.Save(ctx, sessionID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
