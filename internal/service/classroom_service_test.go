package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestClassroomService() (ClassroomService, *repository.Repository) {
	repo := newMockRepository()
	return NewClassroomService(repo, nil, zap.NewNop()), repo
}

func seedClassroom(t *testing.T, repo *repository.Repository, id string, capacity int) {
	t.Helper()
	ctx := context.Background()
	repo.Course.Create(ctx, &model.Course{CourseID: "crs-001", Name: "IELTS 6.5", IsActive: true})
	repo.Classroom.Create(ctx, &model.Classroom{
		ClassroomID: id,
		Name:        "IELTS 晚班",
		CourseID:    "crs-001",
		Capacity:    capacity,
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:      "open",
	})
}

// ── Create 测试 ──

func TestClassroomService_Create_DateOrder(t *testing.T) {
	svc, repo := setupTestClassroomService()
	repo.Course.Create(context.Background(), &model.Course{CourseID: "crs-001", Name: "IELTS 6.5", IsActive: true})

	req := &dto.CreateClassroomRequest{
		Name:      "倒置日期班",
		CourseID:  "crs-001",
		StartDate: "2024-06-30",
		EndDate:   "2024-03-01",
	}
	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrClassroomDateOrder) {
		t.Errorf("期望 ErrClassroomDateOrder，实际: %v", err)
	}
}

func TestClassroomService_Create_CourseNotFound(t *testing.T) {
	svc, _ := setupTestClassroomService()

	req := &dto.CreateClassroomRequest{
		Name:      "无课程班",
		CourseID:  "nonexistent",
		StartDate: "2024-03-01",
		EndDate:   "2024-06-30",
	}
	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── Update / Delete 测试 ──

// 班级日期变更走完整更新链路（含课表缓存清理的降级分支）
func TestClassroomService_Update_DatesAndStatus(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)

	endDate := "2024-07-31"
	status := "closed"
	resp, err := svc.Update(context.Background(), "cls-001", &dto.UpdateClassroomRequest{
		EndDate: &endDate,
		Status:  &status,
	}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.EndDate != "2024-07-31" || resp.Status != "closed" {
		t.Errorf("更新未生效: end=%s status=%s", resp.EndDate, resp.Status)
	}
}

func TestClassroomService_Update_DateOrder(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)

	endDate := "2024-02-01" // 早于开课日期
	_, err := svc.Update(context.Background(), "cls-001", &dto.UpdateClassroomRequest{EndDate: &endDate}, "admin-001")
	if !errors.Is(err, ErrClassroomDateOrder) {
		t.Errorf("期望 ErrClassroomDateOrder，实际: %v", err)
	}
}

func TestClassroomService_Delete_Success(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)

	if err := svc.Delete(context.Background(), "cls-001", "admin-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "cls-001"); !errors.Is(err, ErrClassroomNotFound) {
		t.Errorf("删除后应查不到班级，实际: %v", err)
	}
}

// ── Enroll 测试 ──

func TestClassroomService_Enroll_Success(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)
	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-001", Name: "An"})

	result, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-001"}, "staff-001")
	if err != nil {
		t.Fatalf("Enroll 应成功: %v", err)
	}
	if result.Status != "active" {
		t.Errorf("期望Status=active，实际=%s", result.Status)
	}
}

func TestClassroomService_Enroll_Duplicate(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)
	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-001", Name: "An"})

	if _, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-001"}, "staff-001"); err != nil {
		t.Fatalf("首次报名应成功: %v", err)
	}
	_, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-001"}, "staff-001")
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("期望 ErrAlreadyEnrolled，实际: %v", err)
	}
}

func TestClassroomService_Enroll_Full(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 1)
	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-001", Name: "An"})
	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-002", Name: "Binh"})

	if _, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-001"}, "staff-001"); err != nil {
		t.Fatalf("首个报名应成功: %v", err)
	}
	_, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-002"}, "staff-001")
	if !errors.Is(err, ErrClassroomFull) {
		t.Errorf("期望 ErrClassroomFull，实际: %v", err)
	}
}

// 退班后重新报名应恢复 active 而非报错
func TestClassroomService_Enroll_ReactivateAfterDrop(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)
	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-001", Name: "An"})

	if _, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-001"}, "staff-001"); err != nil {
		t.Fatalf("报名应成功: %v", err)
	}
	if err := svc.Unenroll(context.Background(), "cls-001", "stu-001", "staff-001"); err != nil {
		t.Fatalf("退班应成功: %v", err)
	}

	result, err := svc.Enroll(context.Background(), "cls-001", &dto.EnrollRequest{StudentID: "stu-001"}, "staff-001")
	if err != nil {
		t.Fatalf("重新报名应成功: %v", err)
	}
	if result.Status != "active" {
		t.Errorf("期望Status=active，实际=%s", result.Status)
	}
}

func TestClassroomService_Unenroll_NotFound(t *testing.T) {
	svc, repo := setupTestClassroomService()
	seedClassroom(t, repo, "cls-001", 20)

	err := svc.Unenroll(context.Background(), "cls-001", "nonexistent", "staff-001")
	if !errors.Is(err, ErrEnrollmentNotFound) {
		t.Errorf("期望 ErrEnrollmentNotFound，实际: %v", err)
	}
}
