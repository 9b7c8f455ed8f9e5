package repository

import (
	"context"

	"gorm.io/gorm"

	"english-center/backend/internal/model"
)

// StaffRepository 行政人员数据访问接口
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	List(ctx context.Context, keyword string, page, pageSize int) ([]model.Staff, int64, error)
	Update(ctx context.Context, staff *model.Staff) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实例
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("staff_id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) List(ctx context.Context, keyword string, page, pageSize int) ([]model.Staff, int64, error) {
	var list []model.Staff
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Staff{}).Where("is_active = ?", true)
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("name ILIKE ? OR position ILIKE ?", like, like)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("name ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&list).Error
	return list, total, err
}

func (r *staffRepo) Update(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Staff{}).
		Where("staff_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
