package repositories

import (
	"context"
	"time"
)

// AuditRecord 一条业务操作审计记录
type AuditRecord struct {
	UserID  string         `bson:"user_id" json:"user_id"`
	Action  string         `bson:"action" json:"action"`
	Subject string         `bson:"subject" json:"subject"`
	Detail  map[string]any `bson:"detail,omitempty" json:"detail,omitempty"`
	At      time.Time      `bson:"at" json:"at"`
}

// AuditTrail 业务操作审计日志契约
type AuditTrail interface {
	// Append 追加一条审计记录
	Append(ctx context.Context, record AuditRecord) error
	// ListByUserID 按时间倒序列出用户最近的审计记录
	ListByUserID(ctx context.Context, userID string, limit int) ([]AuditRecord, error)
}
