package model

import "time"

// Exam 考试表 — 对应 exams
type Exam struct {
	ExamID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	ClassroomID string    `gorm:"type:uuid;not null"                             json:"classroom_id"`
	Name        string    `gorm:"type:varchar(100);not null"                     json:"name"`
	ExamDate    time.Time `gorm:"type:date;not null"                             json:"exam_date"`
	MaxScore    float64   `gorm:"type:numeric(6,2);not null;default:100"         json:"max_score"`
	SoftDeleteModel

	// 关联
	Classroom *Classroom `gorm:"foreignKey:ClassroomID;references:ClassroomID" json:"classroom,omitempty"`
}

// TableName 指定表名
func (Exam) TableName() string { return "exams" }

// Score 成绩表 — 对应 scores（考试 × 学员）
type Score struct {
	ScoreID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"score_id"`
	ExamID    string  `gorm:"type:uuid;not null;index:idx_score,unique"      json:"exam_id"`
	StudentID string  `gorm:"type:uuid;not null;index:idx_score,unique"      json:"student_id"`
	Score     float64 `gorm:"type:numeric(6,2);not null"                     json:"score"`
	Comment   string  `gorm:"type:varchar(500)"                              json:"comment,omitempty"`
	BaseModel

	// 关联
	Exam    *Exam    `gorm:"foreignKey:ExamID;references:ExamID"       json:"exam,omitempty"`
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
}

// TableName 指定表名
func (Score) TableName() string { return "scores" }
