package dto

// ── 排课模块 DTO ──

// CreateScheduleRequest 创建周期排课请求
type CreateScheduleRequest struct {
	ClassroomID string `json:"classroom_id" binding:"required,uuid"`
	Weekday     string `json:"weekday"      binding:"required"` // monday … sunday，不区分大小写
	StartTime   string `json:"start_time"   binding:"required"` // "08:00"
	EndTime     string `json:"end_time"     binding:"required"` // "09:30"
}

// UpdateScheduleRequest 更新周期排课请求
type UpdateScheduleRequest struct {
	Weekday   *string `json:"weekday"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// ScheduleListRequest 排课列表查询参数
type ScheduleListRequest struct {
	ClassroomID string `form:"classroom_id" binding:"omitempty,uuid"`
	TeacherID   string `form:"teacher_id"   binding:"omitempty,uuid"`
}

// ScheduleResponse 排课信息响应
//
// 附带所属班级的名称与日期范围，前端课表渲染无需再查班级。
type ScheduleResponse struct {
	ID             string `json:"id"`
	ClassroomID    string `json:"classroom_id"`
	ClassroomName  string `json:"classroom_name,omitempty"`
	Weekday        string `json:"weekday"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ClassStartDate string `json:"class_start_date,omitempty"`
	ClassEndDate   string `json:"class_end_date,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}
