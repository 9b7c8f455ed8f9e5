package repository

import (
	"context"

	"gorm.io/gorm"

	"english-center/backend/internal/model"
)

// ExamRepository 考试数据访问接口
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	ListByClassroom(ctx context.Context, classroomID string) ([]model.Exam, error)
	Update(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type examRepo struct {
	db *gorm.DB
}

// NewExamRepo 创建 ExamRepository 实例
func NewExamRepo(db *gorm.DB) ExamRepository {
	return &examRepo{db: db}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepo) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.WithContext(ctx).
		Preload("Classroom").
		Where("exam_id = ?", id).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepo) ListByClassroom(ctx context.Context, classroomID string) ([]model.Exam, error) {
	var list []model.Exam
	err := r.db.WithContext(ctx).
		Where("classroom_id = ?", classroomID).
		Order("exam_date ASC").
		Find(&list).Error
	return list, err
}

func (r *examRepo) Update(ctx context.Context, exam *model.Exam) error {
	return r.db.WithContext(ctx).Save(exam).Error
}

func (r *examRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Exam{}).
		Where("exam_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
