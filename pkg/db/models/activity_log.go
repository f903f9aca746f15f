package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
	"github.com/Sreenuraj/postqode-nexus/pkg/types"
)

// ActivityLog is an append-only audit row. ProductID is nullable so entries
// survive product deletion; OldValue and NewValue hold point-in-time snapshots
// and are never rewritten after insert.
type ActivityLog struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID        `gorm:"column:user_id;type:uuid;not null"`
	ProductID  *uuid.UUID       `gorm:"column:product_id;type:uuid"`
	ActionType enums.ActionType `gorm:"column:action_type;not null"`
	OldValue   *types.Snapshot  `gorm:"column:old_value;type:jsonb"`
	NewValue   *types.Snapshot  `gorm:"column:new_value;type:jsonb"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table used by GORM.
func (ActivityLog) TableName() string {
	return "activity_logs"
}
