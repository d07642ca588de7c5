package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mentora/internal/rag/schema"
	"mentora/pkg/logger"
)

type fakeRetriever struct {
	docs []*schema.Document
	err  error
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query, typeFilter string) ([]*schema.Document, error) {
	return f.docs, f.err
}

type fakeLLM struct {
	prompt string
	answer string
	err    error
	called bool
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.called = true
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func testLogger() *logger.Logger {
	return logger.New("generator-test", "", "")
}

func beginnerProfile() *schema.UserProfile {
	return &schema.UserProfile{
		KnowledgeLevel:     schema.LevelBeginner,
		LearningPreference: schema.PreferText,
	}
}

func TestGenerateGroundsOnRetrievedMaterial(t *testing.T) {
	docs := []*schema.Document{
		{ID: "a.txt", Content: "chlorophyll absorbs light"},
		{ID: "b.txt", Content: "glucose stores the captured energy"},
	}
	llm := &fakeLLM{answer: "an explanation"}
	g := NewGenerator(&fakeRetriever{docs: docs}, llm, testLogger())

	result, err := g.Generate(context.Background(), beginnerProfile(), "photosynthesis")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Explanation != "an explanation" {
		t.Errorf("Explanation = %q", result.Explanation)
	}
	if len(result.Sources) != 2 {
		t.Errorf("Sources = %d docs, want 2", len(result.Sources))
	}

	for _, doc := range docs {
		if !strings.Contains(llm.prompt, doc.Content) {
			t.Errorf("Prompt is missing document content %q", doc.Content)
		}
	}
	if !strings.Contains(llm.prompt, "\n---\n") {
		t.Error("Prompt is missing the document separator")
	}
	if !strings.Contains(llm.prompt, "NEVER INVENT INFORMATION") {
		t.Error("Prompt is missing the grounding instruction")
	}
	if !strings.Contains(llm.prompt, schema.LevelBeginner) {
		t.Error("Prompt is missing the knowledge level")
	}
	if !strings.Contains(llm.prompt, "photosynthesis") {
		t.Error("Prompt is missing the topic")
	}
}

func TestGenerateAsksClarifyingQuestionsWithoutDifficulties(t *testing.T) {
	llm := &fakeLLM{answer: "ok"}
	g := NewGenerator(&fakeRetriever{docs: []*schema.Document{{ID: "a", Content: "x"}}}, llm, testLogger())

	if _, err := g.Generate(context.Background(), beginnerProfile(), "osmosis"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(llm.prompt, "end your answer with these two questions") {
		t.Error("Expected the difficulty elicitation questions in the prompt")
	}
}

func TestGenerateFocusesOnKnownDifficulties(t *testing.T) {
	llm := &fakeLLM{answer: "ok"}
	g := NewGenerator(&fakeRetriever{docs: []*schema.Document{{ID: "a", Content: "x"}}}, llm, testLogger())

	profile := beginnerProfile()
	profile.Difficulties = []string{"osmotic pressure", "tonicity"}

	if _, err := g.Generate(context.Background(), profile, "osmosis"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(llm.prompt, "osmotic pressure, tonicity") {
		t.Error("Expected the flagged difficulties in the prompt")
	}
	if strings.Contains(llm.prompt, "end your answer with these two questions") {
		t.Error("Clarifying questions should be skipped once difficulties are known")
	}
}

func TestGenerateWithNoMaterial(t *testing.T) {
	llm := &fakeLLM{}
	g := NewGenerator(&fakeRetriever{}, llm, testLogger())

	result, err := g.Generate(context.Background(), beginnerProfile(), "quantum chromodynamics")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Explanation != NoMaterialMessage {
		t.Errorf("Explanation = %q, want NoMaterialMessage", result.Explanation)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources = %d docs, want none", len(result.Sources))
	}
	if llm.called {
		t.Error("The model should not be invoked without grounding material")
	}
}

func TestGeneratePropagatesRetrievalFailure(t *testing.T) {
	g := NewGenerator(&fakeRetriever{err: errors.New("index unavailable")}, &fakeLLM{}, testLogger())

	if _, err := g.Generate(context.Background(), beginnerProfile(), "anything"); err == nil {
		t.Error("Expected a retrieval failure to be returned")
	}
}

func TestGeneratePropagatesModelFailure(t *testing.T) {
	llm := &fakeLLM{err: errors.New("model overloaded")}
	g := NewGenerator(&fakeRetriever{docs: []*schema.Document{{ID: "a", Content: "x"}}}, llm, testLogger())

	if _, err := g.Generate(context.Background(), beginnerProfile(), "anything"); err == nil {
		t.Error("Expected a generation failure to be returned")
	}
}
