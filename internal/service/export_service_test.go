package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *repository.Repository) {
	repo := newMockRepository()
	ctx := context.Background()

	classroom := &model.Classroom{
		ClassroomID: "cls-001",
		Name:        "IELTS 晚班",
		CourseID:    "crs-001",
		Room:        "Room 301",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Course:      &model.Course{CourseID: "crs-001", Name: "IELTS 6.5"},
	}
	repo.Classroom.Create(ctx, classroom)
	repo.Enrollment.Create(ctx, &model.Enrollment{
		EnrollmentID: "enr-001",
		StudentID:    "stu-001",
		ClassroomID:  "cls-001",
		EnrolledAt:   time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		Status:       "active",
		Student:      &model.Student{StudentID: "stu-001", Name: "Nguyen Van An", Phone: "0901234567"},
	})
	repo.Schedule.Create(ctx, &model.Schedule{
		ScheduleID:  "sch-001",
		ClassroomID: "cls-001",
		Weekday:     "wednesday",
		StartTime:   "18:00",
		EndTime:     "19:30",
		Classroom:   classroom,
	})
	repo.Exam.Create(ctx, &model.Exam{
		ExamID:      "exm-001",
		ClassroomID: "cls-001",
		Name:        "期中考",
		ExamDate:    time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
		MaxScore:    100,
		Classroom:   classroom,
	})
	repo.Score.Upsert(ctx, &model.Score{
		ExamID:    "exm-001",
		StudentID: "stu-001",
		Score:     85,
		Student:   &model.Student{StudentID: "stu-001", Name: "Nguyen Van An"},
	})

	return NewExportService(repo, zap.NewNop()), repo
}

// ── ExportStudents 测试 ──

func TestExportService_ExportStudents_Success(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, filename, err := svc.ExportStudents(context.Background(), "cls-001")
	if err != nil {
		t.Fatalf("ExportStudents 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("导出内容不应为空")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾: %s", filename)
	}

	// 回读验证表头分组与数据行
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	name, _ := f.GetCellValue("学员名册", "B4")
	if name != "Nguyen Van An" {
		t.Errorf("期望B4=Nguyen Van An，实际=%s", name)
	}
	group, _ := f.GetCellValue("学员名册", "B2")
	if group != "基本信息" {
		t.Errorf("期望B2分组=基本信息，实际=%s", group)
	}
}

func TestExportService_ExportStudents_Empty(t *testing.T) {
	svc, repo := setupTestExportService()
	repo.Classroom.Create(context.Background(), &model.Classroom{
		ClassroomID: "cls-empty",
		Name:        "空班",
		CourseID:    "crs-001",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	_, _, err := svc.ExportStudents(context.Background(), "cls-empty")
	if !errors.Is(err, ErrExportNoEnrollments) {
		t.Errorf("期望 ErrExportNoEnrollments，实际: %v", err)
	}
}

// ── ExportScores 测试 ──

func TestExportService_ExportScores_Success(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, _, err := svc.ExportScores(context.Background(), "exm-001")
	if err != nil {
		t.Fatalf("ExportScores 应成功: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rate, _ := f.GetCellValue("成绩单", "E4")
	if rate != "85.0%" {
		t.Errorf("期望得分率=85.0%%，实际=%s", rate)
	}
}

// ── ExportTimetableICS 测试 ──

func TestExportService_ExportTimetableICS_Success(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, filename, err := svc.ExportTimetableICS(context.Background(), "cls-001")
	if err != nil {
		t.Fatalf("ExportTimetableICS 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以 .ics 结尾: %s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("ICS 应包含 VEVENT")
	}
	if !strings.Contains(content, "RRULE:FREQ=WEEKLY;UNTIL=20240630T235959Z") {
		t.Errorf("ICS 应包含每周重复规则，实际内容:\n%s", content)
	}
	// 开课日 2024-03-01 是周五，首个周三应为 2024-03-06
	if !strings.Contains(content, "DTSTART:20240306T180000Z") {
		t.Errorf("DTSTART 应为首个周三 18:00，实际内容:\n%s", content)
	}
	if !strings.Contains(content, "LOCATION:Room 301") {
		t.Error("ICS 应包含教室位置")
	}
}

func TestExportService_ExportTimetableICS_NoSchedules(t *testing.T) {
	svc, repo := setupTestExportService()
	repo.Classroom.Create(context.Background(), &model.Classroom{
		ClassroomID: "cls-empty",
		Name:        "空班",
		CourseID:    "crs-001",
		StartDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	_, _, err := svc.ExportTimetableICS(context.Background(), "cls-empty")
	if !errors.Is(err, ErrExportNoSchedules) {
		t.Errorf("期望 ErrExportNoSchedules，实际: %v", err)
	}
}
