package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/tasknest/tasknest-api/internal/errors"
	"github.com/tasknest/tasknest-api/internal/models"
	"github.com/tasknest/tasknest-api/internal/services"
	"go.uber.org/zap"
)

// newChatServer answers every chat completion with content.
func newChatServer(t *testing.T, content string) *services.AIService {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   openai.GPT4o,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    openai.ChatMessageRoleAssistant,
					"content": content,
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return services.NewAIServiceWithConfig(cfg, "", zap.NewNop())
}

func TestSuggestSubtasks_ReturnsSuggestionsWithoutSaving(t *testing.T) {
	env := setupHandlerTestEnvWithAI(t, newChatServer(t, `[{"subject":"Outline","deadline":null},{"subject":"Draft"}]`))
	user, token := env.createUser(t, "ada@example.com",
		models.Task{ID: "t1", Subject: "Write report", Status: "pending", Subtasks: []models.Subtask{}})

	w := env.do(http.MethodPost, "/tasks/t1/subtasks/suggest", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Subtasks []services.SuggestedSubtask `json:"subtasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Subtasks, 2)
	assert.Equal(t, "Outline", response.Subtasks[0].Subject)

	assert.Empty(t, env.reload(t, user.ID).Tasks[0].Subtasks)
}

func TestSuggestSubtasks_NoUsableSuggestions(t *testing.T) {
	env := setupHandlerTestEnvWithAI(t, newChatServer(t, `[{"subject":"  "}]`))
	_, token := env.createUser(t, "ada@example.com",
		models.Task{ID: "t1", Subject: "Write report", Status: "pending", Subtasks: []models.Subtask{}})

	w := env.do(http.MethodPost, "/tasks/t1/subtasks/suggest", token, nil)
	require.Equal(t, http.StatusBadGateway, w.Code)

	var response apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, apierrors.ErrCodeUpstreamError, response.Code)
	assert.Equal(t, "AI service returned no valid subtasks", response.Message)
}
