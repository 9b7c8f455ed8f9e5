package model

import "time"

// Classroom 班级表 — 对应 classrooms
//
// 一个班级是某门课程的一次开班：绑定课程与带班教师，
// start_date / end_date 界定该班所有周期性排课的有效日期范围。
type Classroom struct {
	ClassroomID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"classroom_id"`
	Name        string    `gorm:"type:varchar(100);not null"                     json:"name"`
	CourseID    string    `gorm:"type:uuid;not null"                             json:"course_id"`
	TeacherID   *string   `gorm:"type:uuid"                                      json:"teacher_id,omitempty"`
	Room        string    `gorm:"type:varchar(50)"                               json:"room,omitempty"`
	Capacity    int       `gorm:"type:smallint;not null;default:20"              json:"capacity"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Status      string    `gorm:"type:varchar(20);not null;default:'open'"       json:"status"` // open | in_progress | finished
	SoftDeleteModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"    json:"course,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID"  json:"teacher,omitempty"`
}

// TableName 指定表名
func (Classroom) TableName() string { return "classrooms" }

// Enrollment 报名表 — 对应 enrollments（学员 × 班级）
type Enrollment struct {
	EnrollmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID    string    `gorm:"type:uuid;not null;index:idx_enroll,unique"     json:"student_id"`
	ClassroomID  string    `gorm:"type:uuid;not null;index:idx_enroll,unique"     json:"classroom_id"`
	EnrolledAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"enrolled_at"`
	Status       string    `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | dropped | completed
	BaseModel

	// 关联
	Student   *Student   `gorm:"foreignKey:StudentID;references:StudentID"       json:"student,omitempty"`
	Classroom *Classroom `gorm:"foreignKey:ClassroomID;references:ClassroomID"   json:"classroom,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
