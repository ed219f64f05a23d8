package model

import (
	"fmt"
	"time"
)

// NotificationStatus moves CREATED -> PENDING -> SHOWN and never reverses.
type NotificationStatus int

const (
	NotificationCreated NotificationStatus = iota
	NotificationPending
	NotificationShown
)

func (s NotificationStatus) Valid() bool {
	return s >= NotificationCreated && s <= NotificationShown
}

func (s NotificationStatus) String() string {
	switch s {
	case NotificationCreated:
		return "created"
	case NotificationPending:
		return "pending"
	case NotificationShown:
		return "shown"
	default:
		return fmt.Sprintf("notification_status(%d)", int(s))
	}
}

// ParseNotificationStatus maps a CLI status string to its enum value.
func ParseNotificationStatus(raw string) (NotificationStatus, error) {
	switch raw {
	case "created":
		return NotificationCreated, nil
	case "pending":
		return NotificationPending, nil
	case "shown":
		return NotificationShown, nil
	default:
		return 0, fmt.Errorf("unknown notification status %q", raw)
	}
}

// Notification is a reminder that becomes due RelativeStartTime seconds
// before its task's start time.
type Notification struct {
	ID                uint `gorm:"primaryKey"`
	UserID            uint `gorm:"index"`
	TaskID            uint `gorm:"index"`
	Title             string
	RelativeStartTime int64 // seconds before the task's start time
	Status            NotificationStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
