package model

// User 账号表 — 对应 users
//
// 仅后台操作人员拥有账号（admin | staff | teacher），学生不登录系统。
type User struct {
	UserID             string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email              string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash       string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role               string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"` // admin | staff | teacher
	MustChangePassword bool   `gorm:"not null;default:false"                         json:"must_change_password"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
