// Package openai implementa chat.Responder contra la API de OpenAI.
// Es el reemplazo drop-in del responder mock cuando hay API key.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asthmacare/internal/domain/chat"
	"asthmacare/internal/platform/metrics"

	goopenai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a friendly asthma-management assistant. " +
	"Give short, practical advice about asthma symptoms, medication adherence, " +
	"triggers, exercise, air quality, stress and diet. You are not a doctor: " +
	"for anything urgent or severe, tell the user to contact emergency services " +
	"or their physician."

const requestTimeout = 30 * time.Second

type Responder struct {
	client     *goopenai.Client
	model      string
	maxHistory int
}

func New(apiKey, model string, maxHistory int) (*Responder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key is required")
	}
	if model == "" {
		model = goopenai.GPT4oMini
	}
	if maxHistory <= 0 {
		maxHistory = 10
	}
	return &Responder{
		client:     goopenai.NewClient(apiKey),
		model:      model,
		maxHistory: maxHistory,
	}, nil
}

func (r *Responder) Respond(ctx context.Context, message string, history []chat.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	msgs := make([]goopenai.ChatCompletionMessage, 0, r.maxHistory+2)
	msgs = append(msgs, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	// solo la cola más reciente de la conversación
	if len(history) > r.maxHistory {
		history = history[len(history)-r.maxHistory:]
	}
	for _, m := range history {
		role := goopenai.ChatMessageRoleUser
		if m.Role == chat.RoleAssistant {
			role = goopenai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	msgs = append(msgs, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := r.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    r.model,
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty completion")
	}
	metrics.ChatResponses.WithLabelValues("openai").Inc()
	return resp.Choices[0].Message.Content, nil
}
