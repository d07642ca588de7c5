// Package generator produces the profile-adapted, grounded explanation of
// a topic: it retrieves relevant indexed material and conditions the
// generation model on it, never on the model's own knowledge.
package generator

import (
	"context"
	"fmt"
	"strings"

	"mentora/internal/rag/interfaces"
	"mentora/internal/rag/schema"
	"mentora/pkg/logger"
)

// FallbackMessage is what callers should show when generation fails.
// Generation failures are degraded outcomes, never fatal.
const FallbackMessage = "Sorry, something went wrong while generating your explanation. Please try again."

// NoMaterialMessage is returned when nothing relevant is indexed for the
// topic, so there is no grounding context to explain from.
const NoMaterialMessage = "I could not find any of your study materials covering this topic. Upload related material and ask again."

// Result is the outcome of one generation turn.
type Result struct {
	// Explanation is the generated, profile-adapted text.
	Explanation string `json:"explanation"`

	// Sources are the documents the explanation was grounded in, in
	// retrieval rank order, for attribution display.
	Sources []*schema.Document `json:"sources"`
}

// Generator combines a learner profile, a topic and retrieved material
// into one grounded explanation.
type Generator struct {
	retriever interfaces.Retriever
	llm       interfaces.LLM
	log       *logger.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(retriever interfaces.Retriever, llm interfaces.LLM, log *logger.Logger) *Generator {
	return &Generator{retriever: retriever, llm: llm, log: log}
}

// Generate retrieves material for the topic, assembles the adaptive prompt
// and invokes the generation model. With nothing relevant indexed it
// short-circuits to NoMaterialMessage with no sources, which callers
// treat as a normal answer.
func (g *Generator) Generate(ctx context.Context, profile *schema.UserProfile, topic string) (*Result, error) {
	docs, err := g.retriever.Retrieve(ctx, topic, "")
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	if len(docs) == 0 {
		g.log.WithPayload(map[string]interface{}{"topic": topic}).
			Info("no grounding material found for topic")
		return &Result{Explanation: NoMaterialMessage, Sources: []*schema.Document{}}, nil
	}

	prompt := buildPrompt(profile, topic, docs)

	explanation, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	g.log.WithPayload(map[string]interface{}{
		"topic":   topic,
		"sources": len(docs),
	}).Info("explanation generated")
	return &Result{Explanation: explanation, Sources: docs}, nil
}

// buildPrompt assembles the single composed prompt: grounding context
// verbatim, the never-fabricate instruction, profile steering, and the
// difficulty-elicitation branch.
func buildPrompt(profile *schema.UserProfile, topic string, docs []*schema.Document) string {
	var context strings.Builder
	for i, doc := range docs {
		if i > 0 {
			context.WriteString("\n---\n")
		}
		context.WriteString(doc.Content)
	}

	difficulties := "None"
	if len(profile.Difficulties) > 0 {
		difficulties = strings.Join(profile.Difficulties, ", ")
	}

	var interactive string
	if len(profile.Difficulties) == 0 {
		interactive = fmt.Sprintf(`To better understand the learner's needs, end your answer with these two questions:
1. Which aspect of '%s' do you find most challenging or confusing?
2. Would you rather learn this topic through an explanatory text, an audio summary, or a short infographic/video?`, topic)
	} else {
		interactive = fmt.Sprintf("Based on the learner's previously flagged difficulties (%s), focus the explanation of '%s' on making those points clear.",
			strings.Join(profile.Difficulties, ", "), topic)
	}

	var sb strings.Builder
	sb.WriteString(`You are a tutor specialized in creating adaptive educational content. Your goal is to identify the learner's difficulties and knowledge gaps in a fluid, intuitive dialogue, and to generate short, relevant, dynamic content adapted to the learner's knowledge level and learning preference. Your scope is strictly limited to the reference content provided below. NEVER INVENT INFORMATION.

--- Reference content from the study material index ---
`)
	sb.WriteString(context.String())
	sb.WriteString("\n---\n\n")
	sb.WriteString(fmt.Sprintf("Based on the learner profile and the reference content above, generate an adaptive explanation of '%s'.\n\n", topic))
	sb.WriteString("Your answer MUST begin by presenting the relevant original content you used, followed by your adapted explanation.\n\n")
	sb.WriteString("Learner profile:\n")
	sb.WriteString(fmt.Sprintf("- Knowledge level: %s\n", profile.KnowledgeLevel))
	sb.WriteString(fmt.Sprintf("- Learning preference: %s\n", profile.LearningPreference))
	sb.WriteString(fmt.Sprintf("- Identified difficulties: %s\n\n", difficulties))
	sb.WriteString(interactive)
	sb.WriteString(`

Keep your answer concise, relevant and informative. If the learning preference is video or audio, describe how the content would be presented in that format, since you can only produce text. Example: "Here is a text explanation. If this were a video/audio, it would cover [key points] with [visual/sound elements]."

Start with the relevant original content, then the direct explanation of the topic, and add the format suggestion at the end when it applies.`)

	return sb.String()
}
