package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"english-center/backend/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	BatchUpsert(ctx context.Context, records []model.Attendance) error
	ListBySchedule(ctx context.Context, scheduleID string, date time.Time) ([]model.Attendance, error)
	ListByStudent(ctx context.Context, studentID string, from, to time.Time) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// BatchUpsert 按 (schedule_id, student_id, date) 唯一键整课次覆盖点名结果
func (r *attendanceRepo) BatchUpsert(ctx context.Context, records []model.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "schedule_id"}, {Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at", "updated_by"}),
		}).
		Create(&records).Error
}

func (r *attendanceRepo) ListBySchedule(ctx context.Context, scheduleID string, date time.Time) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("schedule_id = ? AND date = ?", scheduleID, date).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string, from, to time.Time) ([]model.Attendance, error) {
	var list []model.Attendance
	db := r.db.WithContext(ctx).
		Preload("Schedule").
		Preload("Schedule.Classroom").
		Where("student_id = ?", studentID)
	if !from.IsZero() {
		db = db.Where("date >= ?", from)
	}
	if !to.IsZero() {
		db = db.Where("date <= ?", to)
	}
	err := db.Order("date DESC").Find(&list).Error
	return list, err
}
