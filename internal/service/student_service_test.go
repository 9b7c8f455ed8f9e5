package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestStudentService() StudentService {
	return NewStudentService(newMockRepository(), zap.NewNop())
}

// ── Create 测试 ──

func TestStudentService_Create_Success(t *testing.T) {
	svc := setupTestStudentService()

	req := &dto.CreateStudentRequest{
		Name:        "Nguyen Van An",
		DateOfBirth: "2010-05-20",
		Gender:      "male",
		Level:       "beginner",
		ParentName:  "Nguyen Van Binh",
		ParentPhone: "0901234567",
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "Nguyen Van An" {
		t.Errorf("期望Name=Nguyen Van An，实际=%s", result.Name)
	}
	if result.DateOfBirth != "2010-05-20" {
		t.Errorf("期望DateOfBirth=2010-05-20，实际=%s", result.DateOfBirth)
	}
}

// ── GetByID 测试 ──

func TestStudentService_GetByID_NotFound(t *testing.T) {
	svc := setupTestStudentService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestStudentService_Update_PartialFields(t *testing.T) {
	repo := newMockRepository()
	svc := NewStudentService(repo, zap.NewNop())

	student := &model.Student{StudentID: "stu-001", Name: "旧名字", Level: "beginner"}
	repo.Student.Create(context.Background(), student)

	newLevel := "intermediate"
	result, err := svc.Update(context.Background(), "stu-001", &dto.UpdateStudentRequest{Level: &newLevel}, "admin-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Level != "intermediate" {
		t.Errorf("期望Level=intermediate，实际=%s", result.Level)
	}
	if result.Name != "旧名字" {
		t.Errorf("未更新字段应保持原值，实际Name=%s", result.Name)
	}
}

// ── List 测试 ──

func TestStudentService_List_Keyword(t *testing.T) {
	repo := newMockRepository()
	svc := NewStudentService(repo, zap.NewNop())

	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-001", Name: "Tran Thi Mai"})
	repo.Student.Create(context.Background(), &model.Student{StudentID: "stu-002", Name: "Le Van Hung"})

	result, total, err := svc.List(context.Background(), &dto.StudentListRequest{Keyword: "Mai"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("期望命中1条，实际total=%d len=%d", total, len(result))
	}
	if result[0].Name != "Tran Thi Mai" {
		t.Errorf("期望命中 Tran Thi Mai，实际=%s", result[0].Name)
	}
}
