package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tasknest/tasknest-api/internal/reconcile"
	"github.com/tasknest/tasknest-api/internal/services"
)

// Request bodies are decoded into raw field maps so that an absent field can
// be told apart from one explicitly set to null.
type rawFields map[string]json.RawMessage

var errInvalidPayload = errors.New("invalid request body")

func decodeFields(body []byte) (rawFields, error) {
	var fields rawFields
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, errInvalidPayload
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (f rawFields) optionalString(key string) (*string, error) {
	raw, ok := f[key]
	if !ok {
		return nil, nil
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return nil, fmt.Errorf("%w: %s must be a string", errInvalidPayload, key)
	}
	return &s, nil
}

// optionalDeadline reports the parsed deadline and whether the caller asked
// to clear it with an explicit null.
func (f rawFields) optionalDeadline(key string) (*time.Time, bool, error) {
	raw, ok := f[key]
	if !ok {
		return nil, false, nil
	}
	if isNull(raw) {
		return nil, true, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("%w: %s must be a date string or null", errInvalidPayload, key)
	}
	deadline, err := parseDeadline(s)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", errInvalidPayload, key, err)
	}
	return &deadline, false, nil
}

// optionalBool only honours real JSON booleans; anything else counts as absent.
func (f rawFields) optionalBool(key string) *bool {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var b bool
	if json.Unmarshal(raw, &b) != nil || isNull(raw) {
		return nil
	}
	return &b
}

// id accepts string or numeric ids and compares them by their text.
func (f rawFields) id() (string, error) {
	raw, ok := f["id"]
	if !ok {
		raw, ok = f["_id"]
	}
	if !ok || isNull(raw) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("%w: id must be a string or number", errInvalidPayload)
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func parseCreateTask(body []byte) (services.CreateTaskInput, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return services.CreateTaskInput{}, err
	}

	subject, err := fields.optionalString("subject")
	if err != nil {
		return services.CreateTaskInput{}, err
	}
	if subject == nil {
		return services.CreateTaskInput{}, fmt.Errorf("%w: subject is required", errInvalidPayload)
	}
	status, err := fields.optionalString("status")
	if err != nil {
		return services.CreateTaskInput{}, err
	}
	deadline, _, err := fields.optionalDeadline("deadline")
	if err != nil {
		return services.CreateTaskInput{}, err
	}

	return services.CreateTaskInput{
		Subject:  *subject,
		Deadline: deadline,
		Status:   status,
	}, nil
}

func parseUpdateTask(body []byte) (services.UpdateTaskInput, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return services.UpdateTaskInput{}, err
	}

	var input services.UpdateTaskInput
	if input.Subject, err = fields.optionalString("subject"); err != nil {
		return services.UpdateTaskInput{}, err
	}
	if input.Status, err = fields.optionalString("status"); err != nil {
		return services.UpdateTaskInput{}, err
	}
	if input.Deadline, input.ClearDeadline, err = fields.optionalDeadline("deadline"); err != nil {
		return services.UpdateTaskInput{}, err
	}
	return input, nil
}

// parseSubtaskDescriptors decodes {"subtasks": [...]}.
func parseSubtaskDescriptors(body []byte) ([]reconcile.Descriptor, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}

	raw, ok := fields["subtasks"]
	if !ok || isNull(raw) {
		return nil, fmt.Errorf("%w: subtasks must be an array", errInvalidPayload)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: subtasks must be an array", errInvalidPayload)
	}

	descriptors := make([]reconcile.Descriptor, 0, len(entries))
	for i, entry := range entries {
		d, err := parseDescriptor(entry)
		if err != nil {
			return nil, fmt.Errorf("subtasks[%d]: %w", i, err)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func parseDescriptor(raw json.RawMessage) (reconcile.Descriptor, error) {
	fields, err := decodeFields(raw)
	if err != nil {
		return reconcile.Descriptor{}, fmt.Errorf("%w: subtask must be an object", errInvalidPayload)
	}

	var d reconcile.Descriptor
	if d.ID, err = fields.id(); err != nil {
		return reconcile.Descriptor{}, err
	}
	if d.Subject, err = fields.optionalString("subject"); err != nil {
		return reconcile.Descriptor{}, err
	}
	if d.Status, err = fields.optionalString("status"); err != nil {
		return reconcile.Descriptor{}, err
	}
	if d.Deadline, d.ClearDeadline, err = fields.optionalDeadline("deadline"); err != nil {
		return reconcile.Descriptor{}, err
	}
	d.Deleted = fields.optionalBool("deleted")
	return d, nil
}
