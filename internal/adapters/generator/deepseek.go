package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"waifubot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// FallbackAnswer is returned when the completion endpoint answers without
// content. The API tolerates empty answers, so this is not an error.
const FallbackAnswer = "no response from the model"

// DeepSeek wraps the DeepSeek chat completion endpoint.
type DeepSeek struct {
	apiKey   string
	endpoint string
	model    string
}

func NewDeepSeek(endpoint, model, apiKey string) *DeepSeek {
	return &DeepSeek{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (d *DeepSeek) Complete(ctx context.Context, prompts []domain.Prompt) (string, error) {
	messages := make([]chatMessage, len(prompts))
	for i, prompt := range prompts {
		messages[i] = chatMessage{Role: string(prompt.Author), Content: prompt.Text}
	}

	payloadBuf := new(bytes.Buffer)
	err := json.NewEncoder(payloadBuf).Encode(chatRequest{Model: d.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("error encoding completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, payloadBuf)
	if err != nil {
		return "", fmt.Errorf("error creating completion request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+d.apiKey)
	req.Header.Add("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: completion status %d", domain.ErrInvalidResponse, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("error reading completion response: %w", err)
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		log.Debug().Msg("completion response without content, using fallback")
		return FallbackAnswer, nil
	}

	return result.Choices[0].Message.Content, nil
}
