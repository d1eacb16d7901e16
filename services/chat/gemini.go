package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const classifyPrompt = `You label messages sent to a consultation scheduling assistant.
Reply with exactly one word from this list and nothing else: %s.

Message: %q`

// generator is the slice of the Gemini model the classifier needs.
type generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type geminiModel struct {
	model *genai.GenerativeModel
}

func (g *geminiModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// GeminiClassifier asks a Gemini model for the intent and falls back to the
// pattern table when the call fails or the answer is not a known intent.
type GeminiClassifier struct {
	gen      generator
	client   *genai.Client
	fallback Classifier
	logger   *zap.Logger
}

func NewGeminiClassifier(ctx context.Context, apiKey, modelName string, fallback Classifier, logger *zap.Logger) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	c := newGeminiClassifier(&geminiModel{model: model}, fallback, logger)
	c.client = client
	return c, nil
}

func newGeminiClassifier(gen generator, fallback Classifier, logger *zap.Logger) *GeminiClassifier {
	if fallback == nil {
		fallback = NewPatternClassifier(nil)
	}
	return &GeminiClassifier{gen: gen, fallback: fallback, logger: logger}
}

func (g *GeminiClassifier) Classify(ctx context.Context, text string) Intent {
	labels := make([]string, len(Intents))
	for i, in := range Intents {
		labels[i] = string(in)
	}

	out, err := g.gen.GenerateContent(ctx, fmt.Sprintf(classifyPrompt, strings.Join(labels, ", "), text))
	if err != nil {
		g.logger.Warn("intent classification failed, using patterns", zap.Error(err))
		return g.fallback.Classify(ctx, text)
	}

	intent, ok := ParseIntent(strings.Trim(out, " \n\t.\"'`"))
	if !ok {
		g.logger.Debug("unrecognised intent label", zap.String("label", out))
		return g.fallback.Classify(ctx, text)
	}
	return intent
}

// Close releases the underlying Gemini client.
func (g *GeminiClassifier) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
