package types

import (
	"time"

	"gorm.io/datatypes"
)

// Course is the relational record for one catalog course. The primary key is
// the hyphenated node id ("CS-135"), shared with the graph store.
type Course struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"column:code;uniqueIndex;not null" json:"code"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Level       *int           `gorm:"column:level" json:"level,omitempty"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "course" }
