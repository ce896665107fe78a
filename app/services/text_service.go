package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// languageNames maps the translation codes offered by the client to the
// names the model is prompted with. Unknown codes are passed through.
var languageNames = map[string]string{
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"ar": "Arabic",
	"hi": "Hindi",
	"bn": "Bengali",
}

// TextService proxies grammar correction and translation to the Gemini
// API. The credential stays server-side; clients never see it.
type TextService struct {
	client *genai.Client
	model  string
}

// NewTextService creates a TextService backed by the given API key and
// model name.
func NewTextService(ctx context.Context, apiKey, model string) (*TextService, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	return &TextService{client: client, model: model}, nil
}

// CorrectGrammar returns a grammar-corrected version of text.
func (s *TextService) CorrectGrammar(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, grammarPrompt(text))
}

// Translate returns text translated to the language identified by code.
func (s *TextService) Translate(ctx context.Context, text, code string) (string, error) {
	return s.generate(ctx, translatePrompt(text, code))
}

func (s *TextService) generate(ctx context.Context, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

func grammarPrompt(text string) string {
	return fmt.Sprintf("Correct the grammar of the following text:\n\n\"%s\"\n\nReturn only the corrected text.", text)
}

func translatePrompt(text, code string) string {
	return fmt.Sprintf("Translate the following text to %s:\n\n\"%s\"\n\nReturn only the translated text.", languageName(code), text)
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
