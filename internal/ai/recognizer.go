// Package ai proxies product-photo recognition to a vision-capable chat
// model and extracts a structured name/description pair from its reply.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrUnparsableReply means the model answered but no JSON object could be
// extracted from the reply.
var ErrUnparsableReply = errors.New("model reply contained no parsable JSON object")

// Recognition is the structured result of a product-photo lookup.
type Recognition struct {
	Name        string `json:"name" jsonschema_description:"Short product name suitable for an inventory listing"`
	Description string `json:"description" jsonschema_description:"One or two sentence product description"`
}

// Recognizer identifies inventory items from photos.
type Recognizer interface {
	RecognizeItem(ctx context.Context, imageBase64 string) (*Recognition, error)
}

type openAIRecognizer struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewRecognizer builds a Recognizer backed by the OpenAI chat completions
// API.
func NewRecognizer(apiKey string) Recognizer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openAIRecognizer{client: &client, model: openai.ChatModelGPT4o}
}

func generateSchema[T any]() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	raw, _ := json.Marshal(schema)
	return string(raw)
}

var recognitionSchema = generateSchema[Recognition]()

var dataURIPrefix = regexp.MustCompile(`^data:[^;]+;base64,`)

// firstJSONObject spans from the first '{' to the last '}' so replies
// wrapped in prose or markdown fences still yield the object.
var firstJSONObject = regexp.MustCompile(`(?s)\{.*\}`)

func (r *openAIRecognizer) RecognizeItem(ctx context.Context, imageBase64 string) (*Recognition, error) {
	raw := dataURIPrefix.ReplaceAllString(strings.TrimSpace(imageBase64), "")
	dataURI := "data:image/jpeg;base64," + raw

	prompt := fmt.Sprintf(
		"Identify the product in this photo for an inventory system. "+
			"Reply with a single JSON object matching this schema, and nothing else:\n%s",
		recognitionSchema)

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURI,
				}),
			}),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("image recognition request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrUnparsableReply
	}
	return parseRecognition(resp.Choices[0].Message.Content)
}

func parseRecognition(reply string) (*Recognition, error) {
	obj := firstJSONObject.FindString(reply)
	if obj == "" {
		return nil, ErrUnparsableReply
	}
	var rec Recognition
	if err := json.Unmarshal([]byte(obj), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableReply, err)
	}
	if rec.Name == "" {
		return nil, ErrUnparsableReply
	}
	return &rec, nil
}
