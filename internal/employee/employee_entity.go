package employee

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusWarning  Status = "Warning"
	StatusInactive Status = "Inactive"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Role       string    `gorm:"type:varchar(120)"`
	Department string    `gorm:"type:varchar(120)"`
	Workload   int       `gorm:"not null;default:0"`
	Status     Status    `gorm:"type:varchar(16)"`
	// Disabled is the manual "Inactive" override.
	Disabled  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
