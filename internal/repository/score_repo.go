package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"english-center/backend/internal/model"
)

// ScoreRepository 成绩数据访问接口
type ScoreRepository interface {
	Upsert(ctx context.Context, score *model.Score) error
	BatchUpsert(ctx context.Context, scores []model.Score) error
	ListByExam(ctx context.Context, examID string) ([]model.Score, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Score, error)
	Delete(ctx context.Context, id string) error
}

type scoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo 创建 ScoreRepository 实例
func NewScoreRepo(db *gorm.DB) ScoreRepository {
	return &scoreRepo{db: db}
}

// Upsert 按 (exam_id, student_id) 唯一键写入或更新成绩
func (r *scoreRepo) Upsert(ctx context.Context, score *model.Score) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "updated_at", "updated_by"}),
		}).
		Create(score).Error
}

// BatchUpsert 批量录入成绩，同一事务内逐班覆盖
func (r *scoreRepo) BatchUpsert(ctx context.Context, scores []model.Score) error {
	if len(scores) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "updated_at", "updated_by"}),
		}).
		Create(&scores).Error
}

func (r *scoreRepo) ListByExam(ctx context.Context, examID string) ([]model.Score, error) {
	var list []model.Score
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("exam_id = ?", examID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *scoreRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Score, error) {
	var list []model.Score
	err := r.db.WithContext(ctx).
		Preload("Exam").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *scoreRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("score_id = ?", id).
		Delete(&model.Score{}).Error
}
