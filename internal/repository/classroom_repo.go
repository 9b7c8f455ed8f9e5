package repository

import (
	"context"

	"gorm.io/gorm"

	"english-center/backend/internal/model"
)

// ClassroomRepository 班级数据访问接口
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *model.Classroom) error
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	List(ctx context.Context, courseID, teacherID, status string, page, pageSize int) ([]model.Classroom, int64, error)
	Update(ctx context.Context, classroom *model.Classroom) error
	Delete(ctx context.Context, id string, deletedBy string) error
	CountActiveEnrollments(ctx context.Context, classroomID string) (int64, error)
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo 创建 ClassroomRepository 实例
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) Create(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Teacher").
		Where("classroom_id = ?", id).
		First(&classroom).Error
	if err != nil {
		return nil, err
	}
	return &classroom, nil
}

func (r *classroomRepo) List(ctx context.Context, courseID, teacherID, status string, page, pageSize int) ([]model.Classroom, int64, error) {
	var list []model.Classroom
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Classroom{})
	if courseID != "" {
		db = db.Where("course_id = ?", courseID)
	}
	if teacherID != "" {
		db = db.Where("teacher_id = ?", teacherID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Course").Preload("Teacher").
		Order("start_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&list).Error
	return list, total, err
}

func (r *classroomRepo) Update(ctx context.Context, classroom *model.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

func (r *classroomRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Classroom{}).
		Where("classroom_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// CountActiveEnrollments 统计班级当前有效报名数，用于容量校验
func (r *classroomRepo) CountActiveEnrollments(ctx context.Context, classroomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("classroom_id = ? AND status = ?", classroomID, "active").
		Count(&count).Error
	return count, err
}
