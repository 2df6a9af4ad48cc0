// Package reconcile merges a caller-supplied subtask list into the subtasks
// stored on a task.
//
// A sync runs three passes over a copy of the stored list, always in this
// order: entries whose id is not referenced by the incoming list are
// soft-deleted, referenced entries are patched with the fields the caller
// supplied, and the remaining incoming entries are appended as new subtasks.
// The patch pass may resurrect an entry the delete pass just flagged when the
// caller sends an explicit deleted=false.
package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasknest/tasknest-api/internal/models"
)

var (
	ErrInvalidDescriptor = errors.New("invalid subtask")
	ErrNoSubtasks        = errors.New("at least one subtask is required")
)

// Descriptor is one incoming subtask. Nil pointers mean the field was not
// present in the request and must be left untouched on existing entries.
type Descriptor struct {
	ID            string
	Subject       *string
	Deadline      *time.Time
	ClearDeadline bool
	Status        *string
	Deleted       *bool
}

// Sync returns the new stored subtask list for stored reconciled against
// incoming. stored is never modified; on error nothing has been applied.
// newID must return a fresh id on every call.
func Sync(stored []models.Subtask, incoming []Descriptor, newID func() string) ([]models.Subtask, error) {
	index := make(map[string]int, len(stored))
	for i, s := range stored {
		index[s.ID] = i
	}

	matched := make(map[string]struct{}, len(incoming))
	var inserts []Descriptor
	for i, d := range incoming {
		if err := validate(i, d); err != nil {
			return nil, err
		}
		if d.ID != "" {
			if _, ok := index[d.ID]; ok {
				matched[d.ID] = struct{}{}
				continue
			}
		}
		if d.Subject == nil {
			return nil, fmt.Errorf("%w: subtasks[%d].subject is required", ErrInvalidDescriptor, i)
		}
		inserts = append(inserts, d)
	}

	out := make([]models.Subtask, len(stored), len(stored)+len(inserts))
	copy(out, stored)

	for i := range out {
		if _, ok := matched[out[i].ID]; !ok {
			out[i].Deleted = true
		}
	}

	// Sequential overwrite: a repeated id is patched once per occurrence.
	for _, d := range incoming {
		if d.ID == "" {
			continue
		}
		if _, ok := matched[d.ID]; !ok {
			continue
		}
		patch(&out[index[d.ID]], d)
	}

	for _, d := range inserts {
		out = append(out, newSubtask(d, newID()))
	}

	return out, nil
}

// Append adds every incoming descriptor as a new subtask. Ids supplied by
// the caller are ignored.
func Append(stored []models.Subtask, incoming []Descriptor, newID func() string) ([]models.Subtask, error) {
	if len(incoming) == 0 {
		return nil, ErrNoSubtasks
	}
	for i, d := range incoming {
		if err := validate(i, d); err != nil {
			return nil, err
		}
		if d.Subject == nil {
			return nil, fmt.Errorf("%w: subtasks[%d].subject is required", ErrInvalidDescriptor, i)
		}
	}

	out := make([]models.Subtask, len(stored), len(stored)+len(incoming))
	copy(out, stored)
	for _, d := range incoming {
		out = append(out, newSubtask(d, newID()))
	}
	return out, nil
}

func validate(i int, d Descriptor) error {
	if d.Subject != nil && strings.TrimSpace(*d.Subject) == "" {
		return fmt.Errorf("%w: subtasks[%d].subject cannot be empty", ErrInvalidDescriptor, i)
	}
	return nil
}

func patch(s *models.Subtask, d Descriptor) {
	if d.Subject != nil {
		s.Subject = *d.Subject
	}
	if d.ClearDeadline {
		s.Deadline = nil
	} else if d.Deadline != nil {
		deadline := *d.Deadline
		s.Deadline = &deadline
	}
	if d.Status != nil {
		s.Status = *d.Status
	}
	if d.Deleted != nil {
		s.Deleted = *d.Deleted
	}
}

func newSubtask(d Descriptor, id string) models.Subtask {
	s := models.Subtask{
		ID:      id,
		Subject: *d.Subject,
		Status:  models.TaskStatusPending,
	}
	if d.Deadline != nil && !d.ClearDeadline {
		deadline := *d.Deadline
		s.Deadline = &deadline
	}
	if d.Status != nil {
		s.Status = *d.Status
	}
	return s
}
