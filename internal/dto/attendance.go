package dto

// ── 考勤模块 DTO ──

// AttendanceEntry 单条点名记录
type AttendanceEntry struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Status    string `json:"status"     binding:"required,oneof=present absent late"`
	Note      string `json:"note"       binding:"omitempty,max=200"`
}

// BatchAttendanceRequest 整课次批量点名请求
type BatchAttendanceRequest struct {
	ScheduleID string            `json:"schedule_id" binding:"required,uuid"`
	Date       string            `json:"date"        binding:"required,datetime=2006-01-02"`
	Records    []AttendanceEntry `json:"records"     binding:"required,min=1,dive"`
}

// AttendanceListRequest 考勤查询参数
type AttendanceListRequest struct {
	ScheduleID string `form:"schedule_id" binding:"omitempty,uuid"`
	StudentID  string `form:"student_id"  binding:"omitempty,uuid"`
	Date       string `form:"date"        binding:"omitempty,datetime=2006-01-02"`
	From       string `form:"from"        binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"          binding:"omitempty,datetime=2006-01-02"`
}

// AttendanceResponse 考勤信息响应
type AttendanceResponse struct {
	ID         string        `json:"id"`
	ScheduleID string        `json:"schedule_id"`
	Student    *StudentBrief `json:"student,omitempty"`
	Date       string        `json:"date"`
	Status     string        `json:"status"`
	Note       string        `json:"note,omitempty"`
}
