package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return err
	}
	return nil
}

// 管理操作の調査用。条件は全てANDで、新しい順に返す。
func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if f := filter.ActorUserID; f != nil {
		q = q.Where("actor_user_id = ?", *f)
	}
	if f := filter.Action; f != nil {
		q = q.Where("action = ?", *f)
	}
	if f := filter.ResourceType; f != nil {
		q = q.Where("resource_type = ?", *f)
	}
	if f := filter.ResourceID; f != nil {
		q = q.Where("resource_id = ?", *f)
	}
	if f := filter.CreatedFrom; f != nil {
		q = q.Where("created_at >= ?", *f)
	}
	if f := filter.CreatedTo; f != nil {
		q = q.Where("created_at <= ?", *f)
	}

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var logs []model.AuditLog
	err := q.
		Order("created_at desc").
		Order("id desc").
		Limit(clampAuditLimit(filter.Limit)).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// 指定なしは50件、上限は200件
func clampAuditLimit(n int) int {
	const (
		defaultLimit = 50
		maxLimit     = 200
	)
	if n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
