package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Suggester proposes a tag for an unresolved mapping.
type Suggester interface {
	Suggest(ctx context.Context, m models.UnresolvedMapping, tags []string) (string, error)
}

// contentGenerator is the part of *genai.GenerativeModel the suggester uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiSuggester asks a Gemini model to pick one of the allowed tags.
type GeminiSuggester struct {
	client  *genai.Client
	model   contentGenerator
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiSuggester creates a suggester backed by the named Gemini model.
func NewGeminiSuggester(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &GeminiSuggester{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the underlying client.
func (g *GeminiSuggester) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Suggest returns one of tags, or an error when the model answered with
// something else.
func (g *GeminiSuggester) Suggest(ctx context.Context, m models.UnresolvedMapping, tags []string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(m, tags)))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	tag, ok := extractTag(text, tags)
	if !ok {
		return "", fmt.Errorf("gemini answered with an unknown tag: %q", strings.TrimSpace(text))
	}

	g.logger.Debug("Gemini suggested tag",
		logging.Field{Key: logging.FieldMapping, Value: m.String()},
		logging.Field{Key: logging.FieldTag, Value: tag},
	)
	return tag, nil
}

func buildPrompt(m models.UnresolvedMapping, tags []string) string {
	subject := "bank category"
	if m.Kind == models.MappingVendor {
		subject = "payee of a person-to-person transfer"
	}
	return fmt.Sprintf(`You are tagging entries of a Russian household budget.
Pick the budget tag for this %s: %q

Allowed tags: %s

Respond in this format:
Tag: [one allowed tag, copied exactly]`,
		subject, m.Key, strings.Join(tags, ", "))
}

// extractTag finds the allowed tag in a model answer. A "Tag:" line wins;
// otherwise the whole answer must equal a tag.
func extractTag(response string, tags []string) (string, bool) {
	candidate := strings.TrimSpace(response)
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Tag:") {
			candidate = strings.TrimSpace(strings.TrimPrefix(line, "Tag:"))
			break
		}
	}
	candidate = strings.Trim(candidate, `"'[]. `)

	for _, t := range tags {
		if strings.EqualFold(t, candidate) {
			return t, true
		}
	}
	return "", false
}

// SuggestAll fills SuggestedTag on every item the suggester can answer.
// Failures keep the existing suggestion and are logged, never returned.
func SuggestAll(ctx context.Context, s Suggester, items []models.UnresolvedMapping, tags []string, logger logging.Logger) []models.UnresolvedMapping {
	out := make([]models.UnresolvedMapping, len(items))
	copy(out, items)
	if s == nil {
		return out
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	for i := range out {
		if ctx.Err() != nil {
			break
		}
		tag, err := s.Suggest(ctx, out[i], tags)
		if err != nil {
			logger.WithError(err).Warn("AI suggestion failed",
				logging.Field{Key: logging.FieldMapping, Value: out[i].String()})
			continue
		}
		out[i].SuggestedTag = tag
	}
	return out
}
