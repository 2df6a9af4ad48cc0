package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/tasknest/tasknest-api/internal/constants"
	"github.com/tasknest/tasknest-api/internal/models"
	"go.uber.org/zap"
)

type AIService struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// SuggestedSubtask is a subtask proposed by the model. It has no id until a
// caller submits it through the append or sync endpoints.
type SuggestedSubtask struct {
	Subject  string     `json:"subject"`
	Deadline *time.Time `json:"deadline"`
}

func NewAIService(apiKey, model string, logger *zap.Logger) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey), model, logger)
}

// NewAIServiceWithConfig allows pointing the client at a different endpoint.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string, logger *zap.Logger) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// SuggestSubtasks asks the chat model to split a task into smaller steps
func (s *AIService) SuggestSubtasks(ctx context.Context, task models.Task) ([]SuggestedSubtask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	existing := make([]string, 0, len(task.Subtasks))
	for _, sub := range task.Subtasks {
		existing = append(existing, "- "+sub.Subject)
	}

	deadline := "none"
	if task.Deadline != nil {
		deadline = task.Deadline.Format(time.RFC3339)
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a planning assistant. Break the task below into concrete subtasks.

Current time: %s

Task: %s
Task deadline: %s
Existing subtasks:
%s

Return only a JSON array, at most %d items, in this shape:
[
  {
    "subject": "short imperative description",
    "deadline": "ISO8601 timestamp such as 2025-10-28T23:59:59Z, or null"
  }
]

Rules:
- Do not repeat existing subtasks
- Deadlines must not be later than the task deadline
- Return [] if the task cannot be broken down`, currentTime, task.Subject, deadline, strings.Join(existing, "\n"), constants.MaxSuggestedSubtasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	suggestions, err := parseSuggestions(resp.Choices[0].Message.Content)
	if err != nil {
		s.logger.Warn("unparseable subtask suggestions", zap.String("task_id", task.ID), zap.Error(err))
		return nil, err
	}
	return suggestions, nil
}

// parseSuggestions decodes the model output, tolerating a Markdown code fence
// around the JSON array.
func parseSuggestions(content string) ([]SuggestedSubtask, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var suggestions []SuggestedSubtask
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return suggestions, nil
}
