package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubtaskDescriptors(t *testing.T) {
	descriptors, err := parseSubtaskDescriptors([]byte(`{"subtasks": [
		{"_id": "a", "status": "done"},
		{"id": 17, "deadline": null},
		{"subject": "New", "deadline": "2026-03-01", "deleted": "yes"},
		{"id": "b", "deleted": false}
	]}`))
	require.NoError(t, err)
	require.Len(t, descriptors, 4)

	assert.Equal(t, "a", descriptors[0].ID)
	require.NotNil(t, descriptors[0].Status)
	assert.Equal(t, "done", *descriptors[0].Status)
	assert.Nil(t, descriptors[0].Subject)
	assert.Nil(t, descriptors[0].Deleted)

	assert.Equal(t, "17", descriptors[1].ID)
	assert.True(t, descriptors[1].ClearDeadline)
	assert.Nil(t, descriptors[1].Deadline)

	assert.Empty(t, descriptors[2].ID)
	require.NotNil(t, descriptors[2].Deadline)
	assert.True(t, descriptors[2].Deadline.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, descriptors[2].Deleted, "non-boolean deleted is ignored")

	require.NotNil(t, descriptors[3].Deleted)
	assert.False(t, *descriptors[3].Deleted)
}

func TestParseSubtaskDescriptors_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"missing subtasks", `{}`},
		{"null subtasks", `{"subtasks": null}`},
		{"subtasks object", `{"subtasks": {"subject": "x"}}`},
		{"entry not object", `{"subtasks": ["x"]}`},
		{"subject not string", `{"subtasks": [{"subject": 3}]}`},
		{"bad deadline", `{"subtasks": [{"subject": "x", "deadline": "soon"}]}`},
		{"id is object", `{"subtasks": [{"id": {}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSubtaskDescriptors([]byte(tt.body))
			assert.ErrorIs(t, err, errInvalidPayload)
		})
	}
}

func TestParseUpdateTask(t *testing.T) {
	input, err := parseUpdateTask([]byte(`{"subject": "Renamed", "deadline": "2026-03-01T10:00:00+02:00"}`))
	require.NoError(t, err)
	require.NotNil(t, input.Subject)
	assert.Equal(t, "Renamed", *input.Subject)
	assert.Nil(t, input.Status)
	require.NotNil(t, input.Deadline)
	assert.True(t, input.Deadline.Equal(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)))
	assert.False(t, input.ClearDeadline)

	input, err = parseUpdateTask([]byte(`{"deadline": null}`))
	require.NoError(t, err)
	assert.True(t, input.ClearDeadline)

	_, err = parseUpdateTask([]byte(`{"subject": null}`))
	assert.ErrorIs(t, err, errInvalidPayload)
}

func TestParseCreateTask(t *testing.T) {
	input, err := parseCreateTask([]byte(`{"subject": "Buy milk", "status": "todo"}`))
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", input.Subject)
	require.NotNil(t, input.Status)
	assert.Equal(t, "todo", *input.Status)
	assert.Nil(t, input.Deadline)

	_, err = parseCreateTask([]byte(`{"status": "todo"}`))
	assert.ErrorIs(t, err, errInvalidPayload)
}
