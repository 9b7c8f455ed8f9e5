package model

// Course 课程表 — 对应 courses
//
// 课程是教学大纲层面的定义（如 "IELTS 6.5 冲刺"），
// 具体开班信息见 Classroom。
type Course struct {
	CourseID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Level         string  `gorm:"type:varchar(20)"                               json:"level,omitempty"`
	DurationWeeks int     `gorm:"type:smallint;not null;default:12"              json:"duration_weeks"`
	Tuition       float64 `gorm:"type:numeric(12,2);not null;default:0"          json:"tuition"`
	Description   string  `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	IsActive      bool    `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
