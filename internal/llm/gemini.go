package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const modelName = "gemini-pro"

// GeminiClient is a client for the Google Gemini API that serves both
// one-shot prompts and multi-turn chat.
type GeminiClient struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	recorder UsageRecorder
}

// NewGeminiClient creates a new Gemini API client. The system instruction is
// attached to every request; pass an empty string to omit it. Usage for every
// call is reported to the recorder.
func NewGeminiClient(ctx context.Context, apiKey, systemInstruction string, recorder UsageRecorder) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	if systemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemInstruction)},
		}
	}

	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &GeminiClient{client: client, model: model, recorder: recorder}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the
// generated text.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	c.record(ctx, "generate", resp, time.Since(start))
	return extractText(resp)
}

// SendMessage sends a chat message with the given prior turns and returns
// the model's reply.
func (c *GeminiClient) SendMessage(ctx context.Context, message string, history []Turn) (string, error) {
	session := c.model.StartChat()
	session.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		session.History = append(session.History, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	start := time.Now()
	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	c.record(ctx, "chat", resp, time.Since(start))
	return extractText(resp)
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) record(ctx context.Context, endpoint string, resp *genai.GenerateContentResponse, latency time.Duration) {
	if resp.UsageMetadata == nil {
		return
	}
	err := c.recorder.Record(ctx, endpoint, modelName,
		int(resp.UsageMetadata.PromptTokenCount),
		int(resp.UsageMetadata.CandidatesTokenCount),
		latency)
	if err != nil {
		log.Printf("Failed to record model usage: %v", err)
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("generated content is not text")
	}
	return string(text), nil
}
