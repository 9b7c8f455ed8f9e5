package dto

// ── 考试与成绩模块 DTO ──

// CreateExamRequest 创建考试请求
type CreateExamRequest struct {
	ClassroomID string  `json:"classroom_id" binding:"required,uuid"`
	Name        string  `json:"name"         binding:"required,min=1,max=100"`
	ExamDate    string  `json:"exam_date"    binding:"required,datetime=2006-01-02"`
	MaxScore    float64 `json:"max_score"    binding:"omitempty,min=1,max=1000"`
}

// UpdateExamRequest 更新考试请求
type UpdateExamRequest struct {
	Name     *string  `json:"name"      binding:"omitempty,min=1,max=100"`
	ExamDate *string  `json:"exam_date" binding:"omitempty,datetime=2006-01-02"`
	MaxScore *float64 `json:"max_score" binding:"omitempty,min=1,max=1000"`
}

// ExamResponse 考试信息响应
type ExamResponse struct {
	ID            string  `json:"id"`
	ClassroomID   string  `json:"classroom_id"`
	ClassroomName string  `json:"classroom_name,omitempty"`
	Name          string  `json:"name"`
	ExamDate      string  `json:"exam_date"`
	MaxScore      float64 `json:"max_score"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// ── 成绩 ──

// ScoreEntry 单条成绩录入
type ScoreEntry struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	Score     float64 `json:"score"      binding:"min=0"`
	Comment   string  `json:"comment"    binding:"omitempty,max=500"`
}

// BatchScoreRequest 整场考试批量录入成绩请求
type BatchScoreRequest struct {
	Scores []ScoreEntry `json:"scores" binding:"required,min=1,dive"`
}

// ScoreResponse 成绩信息响应
type ScoreResponse struct {
	ID       string        `json:"id"`
	ExamID   string        `json:"exam_id"`
	Student  *StudentBrief `json:"student,omitempty"`
	ExamName string        `json:"exam_name,omitempty"`
	Score    float64       `json:"score"`
	MaxScore float64       `json:"max_score,omitempty"`
	Comment  string        `json:"comment,omitempty"`
}
