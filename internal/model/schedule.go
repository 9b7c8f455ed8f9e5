package model

// Schedule 周期排课表 — 对应 schedules
//
// 一条记录表示某班级每周固定的一次上课时段（星期几 + 起止时间），
// 生效范围由所属班级的 start_date / end_date 决定。
// weekday 统一存小写英文（monday … sunday），匹配时不区分大小写。
type Schedule struct {
	ScheduleID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	ClassroomID string `gorm:"type:uuid;not null"                             json:"classroom_id"`
	Weekday     string `gorm:"type:varchar(10);not null"                      json:"weekday"`
	StartTime   string `gorm:"type:time;not null"                             json:"start_time"` // HH:MM[:SS]
	EndTime     string `gorm:"type:time;not null"                             json:"end_time"`
	SoftDeleteModel

	// 关联
	Classroom *Classroom `gorm:"foreignKey:ClassroomID;references:ClassroomID" json:"classroom,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }
