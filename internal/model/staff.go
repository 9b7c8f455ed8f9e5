package model

// Staff 行政人员档案表 — 对应 staff
type Staff struct {
	StaffID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	UserID   *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	Name     string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email    string  `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone    string  `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	Position string  `gorm:"type:varchar(100)"                              json:"position,omitempty"` // 前台 | 教务 | 市场 | ...
	IsActive bool    `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }
