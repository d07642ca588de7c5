package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentora/internal/rag/extractors"
	"mentora/internal/rag/generator"
	"mentora/internal/rag/indexer"
	"mentora/internal/rag/interfaces"
	"mentora/internal/rag/retriever"
	"mentora/internal/rag/schema"
	"mentora/internal/session"
	"mentora/pkg/logger"
)

type fakeVision struct{}

func (fakeVision) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	return "an image description", nil
}

type fakeTranscriber struct{}

func (fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	return "a transcript", nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeDocStore struct {
	docs      map[string]*schema.Document
	searchHit []*schema.Document
	lastReq   interfaces.SearchRequest
	putErr    error
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{docs: make(map[string]*schema.Document)}
}

func (f *fakeDocStore) Put(ctx context.Context, doc *schema.Document) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeDocStore) Search(ctx context.Context, req interfaces.SearchRequest) ([]*schema.Document, error) {
	f.lastReq = req
	return f.searchHit, nil
}

func (f *fakeDocStore) List(ctx context.Context) ([]*schema.Document, error) {
	out := make([]*schema.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

type fakeLLM struct {
	answer string
	err    error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakeArchiver struct {
	name string
	err  error
}

func (f *fakeArchiver) Archive(ctx context.Context, name string, data []byte, contentType string) error {
	f.name = name
	return f.err
}

func newTestService(store *fakeDocStore, archive Archiver) *Service {
	log := logger.New("service-test", "", "")
	embedder := &fakeEmbedder{}
	dispatcher := extractors.NewDispatcher(fakeVision{}, fakeTranscriber{})
	idx := indexer.NewIndexer(embedder, store, log)
	ret := retriever.NewRetriever(embedder, store, log)
	gen := generator.NewGenerator(ret, &fakeLLM{answer: "an explanation"}, log)
	return NewService(dispatcher, idx, ret, gen, store, session.NewInMemoryStore(), archive, log)
}

func TestUploadMaterialIndexesTextFile(t *testing.T) {
	store := newFakeDocStore()
	archive := &fakeArchiver{}
	svc := newTestService(store, archive)

	doc, err := svc.UploadMaterial(context.Background(), "notes.txt", "text/plain", []byte("mitosis has four phases"))
	if err != nil {
		t.Fatalf("UploadMaterial() error = %v", err)
	}
	if doc.ID != "notes.txt" {
		t.Errorf("Document id = %q, want the filename", doc.ID)
	}
	if doc.Content != "mitosis has four phases" {
		t.Errorf("Content = %q", doc.Content)
	}
	if got := doc.Metadata[schema.MetadataKeyType]; got != "text/plain" {
		t.Errorf("Metadata type = %v", got)
	}
	if got := doc.Metadata[schema.MetadataKeySize]; got != len("mitosis has four phases") {
		t.Errorf("Metadata size = %v", got)
	}
	if _, ok := store.docs["notes.txt"]; !ok {
		t.Error("Expected the document in the store")
	}
	if archive.name != "notes.txt" {
		t.Errorf("Archived name = %q, want the filename", archive.name)
	}
}

func TestUploadMaterialSniffsMissingType(t *testing.T) {
	store := newFakeDocStore()
	svc := newTestService(store, nil)

	doc, err := svc.UploadMaterial(context.Background(), "notes", "", []byte("plain study notes about algebra"))
	if err != nil {
		t.Fatalf("UploadMaterial() error = %v", err)
	}
	if doc.MediaType() == "" {
		t.Error("Expected the media type to be sniffed from content")
	}
}

func TestUploadMaterialOverwritesSameFilename(t *testing.T) {
	store := newFakeDocStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	if _, err := svc.UploadMaterial(ctx, "notes.txt", "text/plain", []byte("first version")); err != nil {
		t.Fatalf("first upload error = %v", err)
	}
	if _, err := svc.UploadMaterial(ctx, "notes.txt", "text/plain", []byte("second version")); err != nil {
		t.Fatalf("second upload error = %v", err)
	}

	if len(store.docs) != 1 {
		t.Errorf("Store holds %d documents, want 1", len(store.docs))
	}
	if got := store.docs["notes.txt"].Content; got != "second version" {
		t.Errorf("Content = %q, want the re-uploaded version", got)
	}
}

func TestUploadMaterialRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(newFakeDocStore(), nil)

	_, err := svc.UploadMaterial(context.Background(), "archive.zip", "application/zip", []byte("PK"))
	if !errors.Is(err, ErrUnsupportedMedia) {
		t.Errorf("UploadMaterial() error = %v, want ErrUnsupportedMedia", err)
	}
}

func TestUploadMaterialWritesNothingOnCorruptFile(t *testing.T) {
	store := newFakeDocStore()
	svc := newTestService(store, nil)

	_, err := svc.UploadMaterial(context.Background(), "corrupt.pdf", "application/pdf", []byte("not a pdf"))
	if err == nil {
		t.Fatal("Expected a corrupt PDF to fail the upload")
	}
	if len(store.docs) != 0 {
		t.Error("Nothing should be indexed when extraction fails")
	}
}

func TestUploadMaterialRejectsEmptyExtraction(t *testing.T) {
	store := newFakeDocStore()
	svc := newTestService(store, nil)

	_, err := svc.UploadMaterial(context.Background(), "blank.txt", "text/plain", []byte("   \n  "))
	if !errors.Is(err, ErrNothingExtracted) {
		t.Errorf("UploadMaterial() error = %v, want ErrNothingExtracted", err)
	}
	if len(store.docs) != 0 {
		t.Error("Nothing should be indexed for an empty extraction")
	}
}

func TestUploadMaterialSurvivesArchiveFailure(t *testing.T) {
	store := newFakeDocStore()
	archive := &fakeArchiver{err: errors.New("bucket unavailable")}
	svc := newTestService(store, archive)

	if _, err := svc.UploadMaterial(context.Background(), "notes.txt", "text/plain", []byte("content")); err != nil {
		t.Errorf("UploadMaterial() error = %v, archiving is best effort", err)
	}
	if len(store.docs) != 1 {
		t.Error("Expected the document indexed despite the archive failure")
	}
}

func TestIngestURL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Krebs cycle</h1><p>It produces ATP.</p></body></html>"))
	}))
	defer page.Close()

	store := newFakeDocStore()
	svc := newTestService(store, nil)

	url := page.URL + "/bio/krebs.html"
	doc, err := svc.IngestURL(context.Background(), url)
	if err != nil {
		t.Fatalf("IngestURL() error = %v", err)
	}
	if doc.ID != url {
		t.Errorf("Document id = %q, want the URL", doc.ID)
	}
	if got := doc.Metadata[schema.MetadataKeySourceURL]; got != url {
		t.Errorf("source_url = %v, want %q", got, url)
	}
	if got := doc.Metadata[schema.MetadataKeyFilename]; got != "krebs.html" {
		t.Errorf("filename = %v, want the path base", got)
	}
	if _, ok := store.docs[url]; !ok {
		t.Error("Expected the page in the store")
	}
}

func TestIngestURLRejectsInvalidURL(t *testing.T) {
	svc := newTestService(newFakeDocStore(), nil)

	if _, err := svc.IngestURL(context.Background(), "ftp://host/file"); err == nil {
		t.Error("Expected an error for a non-http URL")
	}
	if _, err := svc.IngestURL(context.Background(), "not a url"); err == nil {
		t.Error("Expected an error for a malformed URL")
	}
}

func TestSearchTreatsAllAsNoFilter(t *testing.T) {
	store := newFakeDocStore()
	store.searchHit = []*schema.Document{{ID: "a.txt", Content: "text"}}
	svc := newTestService(store, nil)

	docs, err := svc.Search(context.Background(), "photosynthesis", "All")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("Search() returned %d docs, want 1", len(docs))
	}
	if store.lastReq.TypeFilter != "" {
		t.Errorf("TypeFilter = %q, want none for 'all'", store.lastReq.TypeFilter)
	}
}

func TestExplainUsesSessionProfile(t *testing.T) {
	store := newFakeDocStore()
	store.searchHit = []*schema.Document{{ID: "a.txt", Content: "grounding text"}}
	svc := newTestService(store, nil)
	ctx := context.Background()

	result, err := svc.Explain(ctx, "sess-1", "photosynthesis")
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}
	if result.Explanation != "an explanation" {
		t.Errorf("Explanation = %q", result.Explanation)
	}
	if len(result.Sources) != 1 {
		t.Errorf("Sources = %d, want 1", len(result.Sources))
	}
}

func TestUpdateProfileMergesDifficulties(t *testing.T) {
	svc := newTestService(newFakeDocStore(), nil)
	ctx := context.Background()

	first, err := svc.UpdateProfile(ctx, "sess-1", &schema.UserProfile{
		KnowledgeLevel: schema.LevelIntermediate,
		Difficulties:   []string{"entropy", " enthalpy "},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if first.KnowledgeLevel != schema.LevelIntermediate {
		t.Errorf("KnowledgeLevel = %q", first.KnowledgeLevel)
	}
	if len(first.Difficulties) != 2 {
		t.Fatalf("Difficulties = %v, want the trimmed pair", first.Difficulties)
	}

	second, err := svc.UpdateProfile(ctx, "sess-1", &schema.UserProfile{
		Difficulties: []string{"Entropy", "free energy", ""},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if second.KnowledgeLevel != schema.LevelIntermediate {
		t.Error("An empty level must not reset the stored one")
	}
	if len(second.Difficulties) != 3 {
		t.Errorf("Difficulties = %v, want a merged set of 3", second.Difficulties)
	}
}

func TestClearDifficulties(t *testing.T) {
	svc := newTestService(newFakeDocStore(), nil)
	ctx := context.Background()

	if _, err := svc.UpdateProfile(ctx, "sess-1", &schema.UserProfile{Difficulties: []string{"entropy"}}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	profile, err := svc.ClearDifficulties(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ClearDifficulties() error = %v", err)
	}
	if len(profile.Difficulties) != 0 {
		t.Errorf("Difficulties = %v, want none", profile.Difficulties)
	}

	again, _ := svc.GetProfile(ctx, "sess-1")
	if len(again.Difficulties) != 0 {
		t.Error("Clearing must persist across reads")
	}
}
