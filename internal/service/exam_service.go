package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
)

// ── 考试与成绩模块业务错误 ──

var (
	ErrExamNotFound     = errors.New("考试不存在")
	ErrScoreExceedsMax  = errors.New("成绩超出该考试满分")
	ErrScoreNotEnrolled = errors.New("学员未报名该考试所属班级")
)

// ExamService 考试与成绩业务接口
type ExamService interface {
	Create(ctx context.Context, req *dto.CreateExamRequest, callerID string) (*dto.ExamResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ExamResponse, error)
	ListByClassroom(ctx context.Context, classroomID string) ([]dto.ExamResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateExamRequest, callerID string) (*dto.ExamResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	BatchScores(ctx context.Context, examID string, req *dto.BatchScoreRequest, callerID string) ([]dto.ScoreResponse, error)
	ListScoresByExam(ctx context.Context, examID string) ([]dto.ScoreResponse, error)
	ListScoresByStudent(ctx context.Context, studentID string) ([]dto.ScoreResponse, error)
}

type examService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExamService 创建 ExamService 实例
func NewExamService(repo *repository.Repository, logger *zap.Logger) ExamService {
	return &examService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *examService) Create(ctx context.Context, req *dto.CreateExamRequest, callerID string) (*dto.ExamResponse, error) {
	if _, err := s.repo.Classroom.GetByID(ctx, req.ClassroomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("查询班级失败", zap.Error(err))
		return nil, err
	}

	examDate, err := time.Parse("2006-01-02", req.ExamDate)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		ClassroomID: req.ClassroomID,
		Name:        req.Name,
		ExamDate:    examDate,
	}
	exam.MaxScore = 100
	if req.MaxScore > 0 {
		exam.MaxScore = req.MaxScore
	}
	exam.CreatedBy = &callerID
	exam.UpdatedBy = &callerID

	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		s.logger.Error("创建考试失败", zap.Error(err))
		return nil, err
	}
	return s.toExamResponse(exam), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *examService) GetByID(ctx context.Context, id string) (*dto.ExamResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toExamResponse(exam), nil
}

// ────────────────────── ListByClassroom ──────────────────────

func (s *examService) ListByClassroom(ctx context.Context, classroomID string) ([]dto.ExamResponse, error) {
	exams, err := s.repo.Exam.ListByClassroom(ctx, classroomID)
	if err != nil {
		s.logger.Error("列出考试失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		result = append(result, *s.toExamResponse(&exams[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *examService) Update(ctx context.Context, id string, req *dto.UpdateExamRequest, callerID string) (*dto.ExamResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.ExamDate != nil {
		if d, err := time.Parse("2006-01-02", *req.ExamDate); err == nil {
			exam.ExamDate = d
		}
	}
	if req.MaxScore != nil {
		exam.MaxScore = *req.MaxScore
	}
	exam.UpdatedBy = &callerID

	if err := s.repo.Exam.Update(ctx, exam); err != nil {
		s.logger.Error("更新考试失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toExamResponse(exam), nil
}

// ────────────────────── Delete ──────────────────────

func (s *examService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Exam.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Exam.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除考试失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── BatchScores ──────────────────────
//
// 整场考试批量录入：按 (exam_id, student_id) 幂等覆盖，重复提交
// 同一批成绩得到相同结果。录入前逐条校验满分与报名归属。

func (s *examService) BatchScores(ctx context.Context, examID string, req *dto.BatchScoreRequest, callerID string) ([]dto.ScoreResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.Error(err))
		return nil, err
	}

	enrollments, err := s.repo.Enrollment.ListByClassroom(ctx, exam.ClassroomID)
	if err != nil {
		s.logger.Error("查询报名失败", zap.Error(err))
		return nil, err
	}
	// 仅在读学员可录入成绩
	enrolled := make(map[string]bool, len(enrollments))
	for i := range enrollments {
		if enrollments[i].Status == "active" {
			enrolled[enrollments[i].StudentID] = true
		}
	}

	scores := make([]model.Score, 0, len(req.Scores))
	for _, entry := range req.Scores {
		if entry.Score > exam.MaxScore {
			return nil, ErrScoreExceedsMax
		}
		if !enrolled[entry.StudentID] {
			return nil, ErrScoreNotEnrolled
		}
		score := model.Score{
			ExamID:    examID,
			StudentID: entry.StudentID,
			Score:     entry.Score,
			Comment:   entry.Comment,
		}
		score.CreatedBy = &callerID
		score.UpdatedBy = &callerID
		scores = append(scores, score)
	}

	if err := s.repo.Score.BatchUpsert(ctx, scores); err != nil {
		s.logger.Error("批量录入成绩失败", zap.Error(err))
		return nil, err
	}

	return s.ListScoresByExam(ctx, examID)
}

// ────────────────────── ListScoresByExam ──────────────────────

func (s *examService) ListScoresByExam(ctx context.Context, examID string) ([]dto.ScoreResponse, error) {
	exam, err := s.repo.Exam.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		s.logger.Error("查询考试失败", zap.Error(err))
		return nil, err
	}

	scores, err := s.repo.Score.ListByExam(ctx, examID)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScoreResponse, 0, len(scores))
	for i := range scores {
		resp := s.toScoreResponse(&scores[i])
		resp.ExamName = exam.Name
		resp.MaxScore = exam.MaxScore
		result = append(result, *resp)
	}
	return result, nil
}

// ────────────────────── ListScoresByStudent ──────────────────────

func (s *examService) ListScoresByStudent(ctx context.Context, studentID string) ([]dto.ScoreResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, err
	}

	scores, err := s.repo.Score.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScoreResponse, 0, len(scores))
	for i := range scores {
		resp := s.toScoreResponse(&scores[i])
		if scores[i].Exam != nil {
			resp.ExamName = scores[i].Exam.Name
			resp.MaxScore = scores[i].Exam.MaxScore
		}
		result = append(result, *resp)
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *examService) toExamResponse(e *model.Exam) *dto.ExamResponse {
	resp := &dto.ExamResponse{
		ID:          e.ExamID,
		ClassroomID: e.ClassroomID,
		Name:        e.Name,
		ExamDate:    e.ExamDate.Format("2006-01-02"),
		MaxScore:    e.MaxScore,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if e.Classroom != nil {
		resp.ClassroomName = e.Classroom.Name
	}
	return resp
}

func (s *examService) toScoreResponse(sc *model.Score) *dto.ScoreResponse {
	resp := &dto.ScoreResponse{
		ID:      sc.ScoreID,
		ExamID:  sc.ExamID,
		Score:   sc.Score,
		Comment: sc.Comment,
	}
	if sc.Student != nil {
		resp.Student = &dto.StudentBrief{ID: sc.Student.StudentID, Name: sc.Student.Name}
	} else {
		resp.Student = &dto.StudentBrief{ID: sc.StudentID}
	}
	return resp
}
