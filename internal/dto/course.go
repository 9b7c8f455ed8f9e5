package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name          string  `json:"name"           binding:"required,min=1,max=100"`
	Level         string  `json:"level"          binding:"omitempty,max=20"`
	DurationWeeks int     `json:"duration_weeks" binding:"omitempty,min=1,max=104"`
	Tuition       float64 `json:"tuition"        binding:"omitempty,min=0"`
	Description   string  `json:"description"    binding:"omitempty,max=500"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name          *string  `json:"name"           binding:"omitempty,min=1,max=100"`
	Level         *string  `json:"level"          binding:"omitempty,max=20"`
	DurationWeeks *int     `json:"duration_weeks" binding:"omitempty,min=1,max=104"`
	Tuition       *float64 `json:"tuition"        binding:"omitempty,min=0"`
	Description   *string  `json:"description"    binding:"omitempty,max=500"`
	IsActive      *bool    `json:"is_active"`
}

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	Level   string `form:"level"   binding:"omitempty,max=20"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Level         string  `json:"level,omitempty"`
	DurationWeeks int     `json:"duration_weeks"`
	Tuition       float64 `json:"tuition"`
	Description   string  `json:"description,omitempty"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// CourseBrief 课程简要信息（嵌入班级响应）
type CourseBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}
