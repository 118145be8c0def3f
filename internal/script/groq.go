package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/conneroisu/groq-go"

	"vidpilot/internal/sheet"
)

const rewriteSystemPrompt = "You are a copywriter for short-form gardening product videos. " +
	"Rewrite the hook and education lines you are given to be punchier while keeping every product claim intact. " +
	"Respond with a JSON object: {\"hook\": string, \"education\": string}."

// GroqSynthesizer asks an LLM to sharpen the templated hook and education
// lines. Any failure falls back to the template output, so the pipeline
// never stalls on the LLM being down.
type GroqSynthesizer struct {
	base   Synthesizer
	client *groq.Client
	model  groq.ChatModel
}

func NewGroqSynthesizer(apiKey, model string, base Synthesizer) (*GroqSynthesizer, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &GroqSynthesizer{
		base:   base,
		client: client,
		model:  groq.ChatModel(model),
	}, nil
}

func (s *GroqSynthesizer) Synthesize(ctx context.Context, record *sheet.Record) (*Document, error) {
	doc, err := s.base.Synthesize(ctx, record)
	if err != nil {
		return nil, err
	}

	hook, education, err := s.rewrite(ctx, doc)
	if err != nil {
		slog.Warn("LLM rewrite failed, keeping template script", "error", err)
		return doc, nil
	}

	return assemble(hook, education, doc.CTA, doc.ProductName), nil
}

func (s *GroqSynthesizer) rewrite(ctx context.Context, doc *Document) (hook, education string, err error) {
	prompt := fmt.Sprintf("Product: %s\nHook: %s\nEducation: %s", doc.ProductName, doc.Hook, doc.Education)

	resp, err := s.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: s.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleSystem, Content: rewriteSystemPrompt},
			{Role: groq.RoleUser, Content: prompt},
		},
		ResponseFormat: &groq.ChatResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("empty completion")
	}

	var out struct {
		Hook      string `json:"hook"`
		Education string `json:"education"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return "", "", fmt.Errorf("parse completion: %w", err)
	}
	if out.Hook == "" || out.Education == "" {
		return "", "", fmt.Errorf("completion missing fields")
	}

	return out.Hook, out.Education, nil
}
