package repositories

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// GeminiModel is a TextModel backed by the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, configMissing("generative", "GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiModel{client: client, model: model}, nil
}

func (g *GeminiModel) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	temperature := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	if req.Output != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schemaFor(reflect.TypeOf(req.Output))
	}

	for _, tool := range req.Tools {
		cfg.Tools = append(cfg.Tools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{toolDeclaration(tool)},
		})
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	return resultFrom(resp), nil
}

// resultFrom collects text and function calls from the first candidate that has content.
func resultFrom(resp *genai.GenerateContentResponse) *GenerationResult {
	result := &GenerationResult{}
	if resp == nil {
		return result
	}

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}

		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			sb.WriteString(part.Text)
			if part.FunctionCall != nil {
				result.ToolCalls = append(result.ToolCalls, ToolCall{
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				})
			}
		}
		result.Text = sb.String()

		break
	}

	return result
}

func toolDeclaration(tool ToolSpec) *genai.FunctionDeclaration {
	params := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}

	names := make([]string, 0, len(tool.Params))
	for name := range tool.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		params.Properties[name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: tool.Params[name],
		}
		params.Required = append(params.Required, name)
	}

	return &genai.FunctionDeclaration{
		Name:        tool.Name,
		Description: tool.Description,
		Parameters:  params,
	}
}

// schemaFor derives a response schema from a Go type using its json tags; fields without
// omitempty are required.
func schemaFor(t reflect.Type) *genai.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		s := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			tag := f.Tag.Get("json")
			name := strings.SplitN(tag, ",", 2)[0]
			if !f.IsExported() || name == "" || name == "-" {
				continue
			}
			s.Properties[name] = schemaFor(f.Type)
			s.PropertyOrdering = append(s.PropertyOrdering, name)
			if !strings.Contains(tag, ",omitempty") {
				s.Required = append(s.Required, name)
			}
		}
		return s
	case reflect.Slice, reflect.Array:
		return &genai.Schema{Type: genai.TypeArray, Items: schemaFor(t.Elem())}
	case reflect.String:
		return &genai.Schema{Type: genai.TypeString}
	case reflect.Bool:
		return &genai.Schema{Type: genai.TypeBoolean}
	case reflect.Float32, reflect.Float64:
		return &genai.Schema{Type: genai.TypeNumber}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &genai.Schema{Type: genai.TypeInteger}
	default:
		return &genai.Schema{Type: genai.TypeString}
	}
}
