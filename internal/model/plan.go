package model

import "time"

// MinPlanInterval is the smallest allowed spawn interval for a plan.
const MinPlanInterval = 300 * time.Second

// TaskPlan spawns concrete tasks from a template task at a fixed interval.
// LastCreatedAt anchors the phase: it only ever advances in whole interval
// steps, so spawn times stay pinned to the original grid.
type TaskPlan struct {
	ID            uint  `gorm:"primaryKey"`
	UserID        uint  `gorm:"index"`
	TaskID        uint  `gorm:"index"` // template task
	Interval      int64 // seconds
	LastCreatedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p TaskPlan) IntervalDuration() time.Duration {
	return time.Duration(p.Interval) * time.Second
}
