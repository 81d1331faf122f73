package llm

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned when a response body is not valid JSON
	ErrInvalidJSON = errors.New("response is not valid JSON")
	// ErrNoOutput is returned when no known response shape carries text
	ErrNoOutput = errors.New("response carries no generated text")
	// ErrAPI is returned when the body is an API error envelope
	ErrAPI = errors.New("api error")
)

// OutputKind names the response shape the generated text was read from
type OutputKind string

const (
	KindOutputText     OutputKind = "output_text"     // Responses API convenience field
	KindMessageContent OutputKind = "message_content" // Responses API output[].content[].text
	KindChatChoice     OutputKind = "chat_choice"     // Chat Completions choices[0].message.content
	KindOllamaResponse OutputKind = "ollama_response" // Ollama /api/generate
	KindOllamaMessage  OutputKind = "ollama_message"  // Ollama /api/chat
)

// Output is the generated text tagged with the shape it came from
type Output struct {
	Kind OutputKind
	Text string
}

// ParseOutput extracts generated text from a raw API response.
// Shapes are tried in a fixed order; the first non-empty string wins.
func ParseOutput(raw []byte) (Output, error) {
	if !gjson.ValidBytes(raw) {
		return Output{}, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(raw)

	if msg := doc.Get("error.message"); msg.Type == gjson.String {
		return Output{}, fmt.Errorf("%w: %s", ErrAPI, msg.Str)
	}

	if text, ok := nonEmptyString(doc.Get("output_text")); ok {
		return Output{Kind: KindOutputText, Text: text}, nil
	}

	// Reasoning models emit reasoning items before the message, so skip
	// anything that is not a message or an output_text part.
	for _, item := range doc.Get("output").Array() {
		if t := item.Get("type"); t.Exists() && t.Str != "message" {
			continue
		}
		for _, part := range item.Get("content").Array() {
			if t := part.Get("type"); t.Exists() && t.Str != "output_text" {
				continue
			}
			if text, ok := nonEmptyString(part.Get("text")); ok {
				return Output{Kind: KindMessageContent, Text: text}, nil
			}
		}
	}

	if text, ok := nonEmptyString(doc.Get("choices.0.message.content")); ok {
		return Output{Kind: KindChatChoice, Text: text}, nil
	}

	if text, ok := nonEmptyString(doc.Get("response")); ok {
		return Output{Kind: KindOllamaResponse, Text: text}, nil
	}

	if text, ok := nonEmptyString(doc.Get("message.content")); ok {
		return Output{Kind: KindOllamaMessage, Text: text}, nil
	}

	return Output{}, ErrNoOutput
}

func nonEmptyString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String || r.Str == "" {
		return "", false
	}
	return r.Str, true
}
