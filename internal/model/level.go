package model

import (
	"math"
	"time"
)

// TaskCompletedScore is the experience awarded for one completed task.
const TaskCompletedScore = 1

// Level stores a user's experience counter. The displayed level is a pure
// function of the counter.
type Level struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"uniqueIndex"`
	Experience int  `gorm:"default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CurrentLevel derives the level from accumulated experience.
func (l Level) CurrentLevel() int {
	return int(math.Floor((-1 + math.Sqrt(float64(l.Experience)*8+1)) / 2))
}

// NextLevelExperience returns the total experience required for the next
// level.
func (l Level) NextLevelExperience() int {
	level := l.CurrentLevel()
	return (level + 1) * (level + 2) / 2
}
