package departments

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID           uuid.UUID `json:"department_id"`
	Code         string    `json:"department_code"`
	Name         string    `json:"department_name"`
	ShortName    string    `json:"department_short_name,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedDate  time.Time `json:"created_date"`
	CreatedBy    string    `json:"created_by,omitempty"`
	ModifiedDate time.Time `json:"modified_date"`
	ModifiedBy   string    `json:"modified_by,omitempty"`
}
