package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"invoice-agent/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// WriterService drafts blog posts from a topic request.
type WriterService interface {
	DraftPost(ctx context.Context, topic string) (*core.PostInput, error)
}

// Writer drafts articles in two passes: a free-form writing pass for the
// article body, then a structured-output pass for listing metadata. The draft
// is returned unpublished; a human reviews and publishes it.
type Writer struct {
	client *openai.Client
}

func NewWriter(apiKey string) *Writer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Writer{client: &client}
}

func (w *Writer) DraftPost(ctx context.Context, topic string) (*core.PostInput, error) {
	content, err := w.writeArticle(ctx, topic)
	if err != nil {
		return nil, err
	}

	meta, err := w.generateMetadata(ctx, topic, content)
	if err != nil {
		return nil, err
	}

	postType := strings.ToLower(strings.TrimSpace(meta.Type))
	switch postType {
	case "insight", "tutorial", "announcement":
	default:
		postType = "insight"
	}

	return &core.PostInput{
		Title:       meta.Title,
		Description: meta.Description,
		Content:     content,
		Tags:        meta.Tags,
		Type:        postType,
	}, nil
}

func (w *Writer) writeArticle(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(`Write an engaging, well-structured blog article STRICTLY about the topic below.
Stay precisely on topic; never pad with generic filler content.
Use markdown with ## section headings. 600-1200 words.

Topic: %s`, topic)

	resp, err := w.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	content := strings.TrimSpace(resp.OutputText())
	if content == "" {
		return "", fmt.Errorf("empty article from writing pass")
	}
	return content, nil
}

func (w *Writer) generateMetadata(ctx context.Context, topic, content string) (*core.PostMetadata, error) {
	prompt := fmt.Sprintf(`Generate listing metadata for this blog article.
The metadata must reflect the article itself, not the generic topic area.

Original request: %s

Article:
%s`, topic, content)

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(core.PostMetadata{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	resp, err := w.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:   constant.JSONSchema("json_schema"),
					Name:   "post_metadata",
					Strict: param.NewOpt(true),
					Schema: schemaMap,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	var meta core.PostMetadata
	if err := json.Unmarshal([]byte(resp.OutputText()), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("metadata pass produced no title")
	}
	return &meta, nil
}
