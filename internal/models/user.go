package models

import "time"

// User is the aggregate root: every task and subtask a user owns is stored
// inside the Tasks document and saved together with the user row.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Tasks        TaskList  `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FindTask returns a pointer into u.Tasks for the task with the given id,
// or nil when there is no such task or it has been soft-deleted.
func (u *User) FindTask(id string) *Task {
	for i := range u.Tasks {
		if u.Tasks[i].ID == id {
			if u.Tasks[i].Deleted {
				return nil
			}
			return &u.Tasks[i]
		}
	}
	return nil
}
