package dto

// ── 行政人员模块 DTO ──

// CreateStaffRequest 创建行政人员请求
type CreateStaffRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Phone    string `json:"phone"    binding:"omitempty,max=20"`
	Position string `json:"position" binding:"omitempty,max=100"`
}

// UpdateStaffRequest 更新行政人员请求
type UpdateStaffRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Phone    *string `json:"phone"    binding:"omitempty,max=20"`
	Position *string `json:"position" binding:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

// StaffListRequest 行政人员列表查询参数
type StaffListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=100"` // 姓名/岗位模糊匹配
}

// StaffResponse 行政人员信息响应
type StaffResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Position  string `json:"position,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
