package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name           string `json:"name"           binding:"required,min=1,max=100"`
	Email          string `json:"email"          binding:"omitempty,email"`
	Phone          string `json:"phone"          binding:"omitempty,max=20"`
	Specialization string `json:"specialization" binding:"omitempty,max=100"`
	HireDate       string `json:"hire_date"      binding:"omitempty,datetime=2006-01-02"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	Name           *string `json:"name"           binding:"omitempty,min=1,max=100"`
	Email          *string `json:"email"          binding:"omitempty,email"`
	Phone          *string `json:"phone"          binding:"omitempty,max=20"`
	Specialization *string `json:"specialization" binding:"omitempty,max=100"`
	HireDate       *string `json:"hire_date"      binding:"omitempty,datetime=2006-01-02"`
	IsActive       *bool   `json:"is_active"`
}

// TeacherListRequest 教师列表查询参数
type TeacherListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"` // 姓名/专长模糊匹配
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	HireDate       string `json:"hire_date,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// TeacherBrief 教师简要信息（嵌入班级响应）
type TeacherBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
