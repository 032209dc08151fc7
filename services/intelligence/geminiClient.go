package intelligence

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ContentGenerator is the minimal surface the resolver needs from a
// language model. GeminiClient is the production implementation; tests
// substitute a fake.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type GeminiClient struct {
	model     *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel(modelName)

	jsonModel := client.GenerativeModel(modelName)
	jsonModel.ResponseMIMEType = "application/json"

	return &GeminiClient{model: model, jsonModel: jsonModel}
}

// GenerateContent returns the model's free-text answer for the prompt.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, g.model, prompt)
}

// GenerateJSON asks the model for a JSON-only answer, prepending a system
// instruction. The client is shared across concurrent turns, so the
// instruction is set on a per-call copy, never on the shared model.
func (g *GeminiClient) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	m := *g.jsonModel
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	return generate(ctx, &m, prompt)
}

func generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
