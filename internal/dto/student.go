package dto

// ── 学员模块 DTO ──

// CreateStudentRequest 创建学员请求
type CreateStudentRequest struct {
	Name        string `json:"name"          binding:"required,min=1,max=100"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      string `json:"gender"        binding:"omitempty,oneof=male female other"`
	Phone       string `json:"phone"         binding:"omitempty,max=20"`
	Email       string `json:"email"         binding:"omitempty,email"`
	Level       string `json:"level"         binding:"omitempty,oneof=beginner elementary intermediate advanced"`
	ParentName  string `json:"parent_name"   binding:"omitempty,max=100"`
	ParentPhone string `json:"parent_phone"  binding:"omitempty,max=20"`
}

// UpdateStudentRequest 更新学员请求
type UpdateStudentRequest struct {
	Name        *string `json:"name"          binding:"omitempty,min=1,max=100"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender      *string `json:"gender"        binding:"omitempty,oneof=male female other"`
	Phone       *string `json:"phone"         binding:"omitempty,max=20"`
	Email       *string `json:"email"         binding:"omitempty,email"`
	Level       *string `json:"level"         binding:"omitempty,oneof=beginner elementary intermediate advanced"`
	ParentName  *string `json:"parent_name"   binding:"omitempty,max=100"`
	ParentPhone *string `json:"parent_phone"  binding:"omitempty,max=20"`
}

// StudentListRequest 学员列表查询参数
type StudentListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"` // 姓名/电话/邮箱模糊匹配
}

// StudentResponse 学员信息响应
type StudentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Level       string `json:"level,omitempty"`
	ParentName  string `json:"parent_name,omitempty"`
	ParentPhone string `json:"parent_phone,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// StudentBrief 学员简要信息（嵌入报名/成绩/考勤响应）
type StudentBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
