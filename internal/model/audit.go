package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionCreateTaxRate  = "CREATE_TAX_RATE"
	ActionUpdateTaxRate  = "UPDATE_TAX_RATE"
	ActionDeleteTaxRate  = "DELETE_TAX_RATE"
	ActionCreateOperator = "CREATE_OPERATOR"
	ActionUpdateOperator = "UPDATE_OPERATOR"
	ActionDeleteOperator = "DELETE_OPERATOR"
	ActionCreateLocation = "CREATE_LOCATION"
	ActionUpdateLocation = "UPDATE_LOCATION"
	ActionDeleteLocation = "DELETE_LOCATION"
)

// AuditLog tracks who changed pricing inputs and when
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"` // nil for CLI/system changes
	User       *User          `gorm:"foreignKey:UserID" json:"user"`
	Action     string         `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string         `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string         `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    datatypes.JSON `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
