package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions.
const (
	AuditActionCreate = "create"
	AuditActionEdit   = "edit"
	AuditActionDelete = "delete"
)

// AuditLog records one successful mutation made through the API.
type AuditLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TraceID    string         `gorm:"index:idx_audit_trace;size:64;not null" json:"traceId"`
	Entity     string         `gorm:"index:idx_audit_entity;size:32;not null" json:"entity"`
	EntityID   int64          `gorm:"index:idx_audit_entity" json:"entityId"`
	Action     string         `gorm:"size:16;not null" json:"action"`
	Payload    datatypes.JSON `json:"payload"`
	Error      string         `gorm:"type:text" json:"error,omitempty"`
	IP         string         `gorm:"size:45" json:"ip"`
	DurationMs int            `json:"durationMs"`
	CreatedAt  time.Time      `gorm:"index:idx_audit_created;autoCreateTime" json:"createdAt"`
}
