package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkSession is one stretch of work. A nil EndTime marks the session as
// active; at most one active session may exist at a time, enforced by the
// session handlers rather than a store constraint. Date is the ISO
// yyyy-mm-dd day the session started.
type WorkSession struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	StartTime time.Time  `gorm:"not null" json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Date      string     `gorm:"not null" json:"date"`
}

func (s *WorkSession) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Hours reports the session length in hours, zero while still active.
func (s *WorkSession) Hours() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Hours()
}
