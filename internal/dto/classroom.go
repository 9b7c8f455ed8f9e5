package dto

// ── 班级模块 DTO ──

// CreateClassroomRequest 开班请求
type CreateClassroomRequest struct {
	Name      string `json:"name"       binding:"required,min=1,max=100"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
	TeacherID string `json:"teacher_id" binding:"omitempty,uuid"`
	Room      string `json:"room"       binding:"omitempty,max=50"`
	Capacity  int    `json:"capacity"   binding:"omitempty,min=1,max=200"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   binding:"required,datetime=2006-01-02"`
}

// UpdateClassroomRequest 更新班级请求
type UpdateClassroomRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=1,max=100"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
	Room      *string `json:"room"       binding:"omitempty,max=50"`
	Capacity  *int    `json:"capacity"   binding:"omitempty,min=1,max=200"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Status    *string `json:"status"     binding:"omitempty,oneof=open in_progress finished"`
}

// ClassroomListRequest 班级列表查询参数
type ClassroomListRequest struct {
	PaginationRequest
	CourseID  string `form:"course_id"  binding:"omitempty,uuid"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=open in_progress finished"`
}

// ClassroomResponse 班级信息响应
type ClassroomResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Course    *CourseBrief  `json:"course,omitempty"`
	Teacher   *TeacherBrief `json:"teacher,omitempty"`
	Room      string        `json:"room,omitempty"`
	Capacity  int           `json:"capacity"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// ── 报名 ──

// EnrollRequest 学员报名请求
type EnrollRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// EnrollmentResponse 报名信息响应
type EnrollmentResponse struct {
	ID         string        `json:"id"`
	Student    *StudentBrief `json:"student,omitempty"`
	EnrolledAt string        `json:"enrolled_at"`
	Status     string        `json:"status"`
}
