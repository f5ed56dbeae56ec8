package llm

import (
	"context"

	"github.com/foodops-lab/rcagent/pkg/domain/model"
	"github.com/foodops-lab/rcagent/pkg/domain/types"
	"github.com/foodops-lab/rcagent/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-flash-latest"

type geminiClient struct {
	client *genai.Client
	model  string
}

var _ Client = &geminiClient{}

// NewGemini creates a Client backed by the Gemini API
func NewGemini(ctx context.Context, apiKey, modelID string) (Client, error) {
	if apiKey == "" {
		return nil, goerr.New("gemini API key is required")
	}
	if modelID == "" {
		modelID = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client")
	}

	return &geminiClient{
		client: client,
		model:  modelID,
	}, nil
}

func (c *geminiClient) Generate(ctx context.Context, systemPrompt string, history []*model.Message) (string, error) {
	contents := BuildContents(history)
	if len(contents) == 0 {
		return "", goerr.New("no content to send")
	}

	logging.From(ctx).Info("calling generation service",
		"model", c.model,
		"turns", len(contents),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	})
	if err != nil {
		return "", goerr.Wrap(err, "generation request failed", goerr.V("model", c.model))
	}

	text := resp.Text()
	if text == "" {
		return "", goerr.New("generation service returned no text", goerr.V("model", c.model))
	}
	return text, nil
}

// BuildContents maps the session history onto the wire format: one content
// per message, each part in arrival order, text and image kept as separate
// parts. Nothing is truncated, reordered or summarized.
func BuildContents(history []*model.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		parts := make([]*genai.Part, 0, len(msg.Parts))
		for _, part := range msg.Parts {
			switch p := part.(type) {
			case model.TextPart:
				parts = append(parts, genai.NewPartFromText(string(p)))
			case model.ImagePart:
				parts = append(parts, genai.NewPartFromBytes(p.Data, p.MIMEType))
			}
		}
		if len(parts) == 0 {
			continue
		}

		role := genai.Role(genai.RoleUser)
		if msg.Role == types.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromParts(parts, role))
	}
	return contents
}
