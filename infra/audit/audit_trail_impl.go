// Package audit 是审计日志契约的 MongoDB 实现。
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gocrud/shop/core/repositories"
)

const (
	// DatabaseName 审计库名
	DatabaseName = "shop_audit"
	// CollectionName 审计集合名
	CollectionName = "operations"
)

// AuditTrailImpl AuditTrail 的 MongoDB 实现
type AuditTrailImpl struct {
	collection *mongo.Collection
}

// NewAuditTrailImpl 创建审计日志
func NewAuditTrailImpl(client *mongo.Client) *AuditTrailImpl {
	return &AuditTrailImpl{
		collection: client.Database(DatabaseName).Collection(CollectionName),
	}
}

// Append 追加一条审计记录
func (a *AuditTrailImpl) Append(ctx context.Context, record repositories.AuditRecord) error {
	if record.At.IsZero() {
		record.At = time.Now()
	}
	if _, err := a.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("audit trail: insert failed: %w", err)
	}
	return nil
}

// ListByUserID 按时间倒序列出用户最近的审计记录
func (a *AuditTrailImpl) ListByUserID(ctx context.Context, userID string, limit int) ([]repositories.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	cursor, err := a.collection.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "at", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("audit trail: query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var records []repositories.AuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("audit trail: decode failed: %w", err)
	}
	return records, nil
}

// NewClient 创建 MongoDB 客户端并验证连通性
func NewClient(uri string, timeout time.Duration) (*mongo.Client, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetMaxPoolSize(100).
		SetMinPoolSize(5))
	if err != nil {
		return nil, fmt.Errorf("audit: failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit: failed to connect to mongo: %w", err)
	}
	return client, nil
}
