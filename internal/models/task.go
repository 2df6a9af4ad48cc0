package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const TaskStatusPending = "pending"

type Task struct {
	ID       string     `json:"id"`
	Subject  string     `json:"subject"`
	Deadline *time.Time `json:"deadline"`
	Status   string     `json:"status"`
	Deleted  bool       `json:"deleted"`
	Subtasks []Subtask  `json:"subtasks"`
}

type Subtask struct {
	ID       string     `json:"id"`
	Subject  string     `json:"subject"`
	Deadline *time.Time `json:"deadline"`
	Status   string     `json:"status"`
	Deleted  bool       `json:"deleted"`
}

// TaskList is the ordered task collection embedded in a user row. It is
// persisted as a single JSON document column.
type TaskList []Task

// Value implements driver.Valuer.
func (l TaskList) Value() (driver.Value, error) {
	if l == nil {
		l = TaskList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *TaskList) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*l = TaskList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported task list column type %T", value)
	}

	if len(data) == 0 {
		*l = TaskList{}
		return nil
	}

	var tasks TaskList
	if err := json.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("failed to decode task list: %w", err)
	}
	*l = tasks
	return nil
}

// GormDataType implements schema.GormDataTypeInterface.
func (TaskList) GormDataType() string {
	return "json"
}

// GormDBDataType picks the column type for the active dialect.
func (TaskList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "LONGTEXT"
	case "postgres":
		return "JSONB"
	default:
		return "TEXT"
	}
}
