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

// ExtractorService turns free-form timesheet text into candidate entry records.
// The returned records are untrusted: callers must run them through
// core.ValidateEntries before billing anything.
type ExtractorService interface {
	ExtractEntries(ctx context.Context, rawText string, hourlyRate string) ([]core.RawEntry, error)
}

type Extractor struct {
	client *openai.Client
}

func NewExtractor(apiKey string) *Extractor {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Extractor{client: &client}
}

// ExtractEntries sends the timesheet text to the model and parses the
// structured entry list out of its response. The call is single-shot: a failed
// or malformed response surfaces as an error, and any retry policy or time
// budget belongs to the caller's context.
func (e *Extractor) ExtractEntries(ctx context.Context, rawText string, hourlyRate string) ([]core.RawEntry, error) {
	prompt := fmt.Sprintf(`Process these timecard entries into professional invoice line items.
Hourly rate: $%s

Raw entries:
%s

Rules:
1. date must be in YYYY-MM-DD format. Entries like "3/15" refer to the most recent occurrence of that month and day.
2. hours is the decimal number of hours worked.
3. description is a clear, professional description of the work.
4. rate must be exactly "%s" for every entry. Do not invent a different rate.
5. amount is hours * rate. It is recomputed server-side, so do not round creatively.

Return a JSON object with a single "entries" array, one object per dated block of work.`,
		hourlyRate, rawText, hourlyRate)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "timesheet_extraction",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Structured time entries extracted from free-form timesheet text"),
				},
			},
		},
	}

	resp, err := e.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	return ParseExtraction(resp.OutputText())
}

// ParseExtraction locates and parses the structured entry payload in a model
// response. Structured output normally yields a clean JSON object, but the
// parse is defensive: if the response is wrapped in prose, the outermost
// bracketed array substring is extracted and parsed instead.
func ParseExtraction(content string) ([]core.RawEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &core.PipelineError{Kind: core.ErrExtractionFailed, Index: -1,
			Message: "empty response from extraction service"}
	}

	// Preferred shape: the strict-schema object root.
	var wrapped core.TimesheetExtraction
	if err := json.Unmarshal([]byte(content), &wrapped); err == nil && wrapped.Entries != nil {
		return checkEntryShapes(content, wrapped.Entries)
	}

	// Fallback: locate the outermost [...] substring in the prose.
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, &core.PipelineError{Kind: core.ErrExtractionFailed, Index: -1,
			Message: "no JSON array found in extraction response"}
	}
	arrayText := content[start : end+1]

	var entries []core.RawEntry
	if err := json.Unmarshal([]byte(arrayText), &entries); err != nil {
		return nil, &core.PipelineError{Kind: core.ErrSchemaViolation, Index: -1,
			Message: fmt.Sprintf("extraction output is not a list of entry objects: %v", err)}
	}
	return checkEntryShapes(arrayText, entries)
}

// checkEntryShapes rejects structurally wrong payloads (a list of strings, or
// objects missing required keys) before the records reach the validator. The
// validator owns the precise per-field checks; this is only a shape gate.
func checkEntryShapes(payload string, entries []core.RawEntry) ([]core.RawEntry, error) {
	var generic any
	if err := json.Unmarshal([]byte(payload), &generic); err != nil {
		return nil, &core.PipelineError{Kind: core.ErrSchemaViolation, Index: -1,
			Message: fmt.Sprintf("unparseable extraction payload: %v", err)}
	}

	items, ok := generic.([]any)
	if !ok {
		obj, isObj := generic.(map[string]any)
		if !isObj {
			return nil, &core.PipelineError{Kind: core.ErrSchemaViolation, Index: -1,
				Message: "extraction output is not a JSON array"}
		}
		items, ok = obj["entries"].([]any)
		if !ok {
			return nil, &core.PipelineError{Kind: core.ErrSchemaViolation, Index: -1,
				Message: "extraction object has no entries array"}
		}
	}

	for i, item := range items {
		fields, isObj := item.(map[string]any)
		if !isObj {
			return nil, &core.PipelineError{Kind: core.ErrSchemaViolation, Index: i,
				Message: "entry is not a JSON object"}
		}
		for _, key := range []string{"date", "hours", "description"} {
			if _, present := fields[key]; !present {
				return nil, &core.PipelineError{Kind: core.ErrSchemaViolation, Index: i,
					Message: fmt.Sprintf("entry is missing required key %q", key)}
			}
		}
	}
	return entries, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.TimesheetExtraction
	return reflector.Reflect(v)
}
