package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"english-center/backend/internal/dto"
	"english-center/backend/internal/model"
	"english-center/backend/internal/repository"
)

// ── 行政人员模块业务错误 ──

var (
	ErrStaffNotFound = errors.New("行政人员不存在")
)

// StaffService 行政人员业务接口
type StaffService interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest, callerID string) (*dto.StaffResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StaffResponse, error)
	List(ctx context.Context, req *dto.StaffListRequest) ([]dto.StaffResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateStaffRequest, callerID string) (*dto.StaffResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

func (s *staffService) Create(ctx context.Context, req *dto.CreateStaffRequest, callerID string) (*dto.StaffResponse, error) {
	staff := &model.Staff{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
		IsActive: true,
	}
	staff.CreatedBy = &callerID
	staff.UpdatedBy = &callerID

	if err := s.repo.Staff.Create(ctx, staff); err != nil {
		s.logger.Error("创建行政人员失败", zap.Error(err))
		return nil, err
	}
	return s.toStaffResponse(staff), nil
}

func (s *staffService) GetByID(ctx context.Context, id string) (*dto.StaffResponse, error) {
	staff, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("查询行政人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toStaffResponse(staff), nil
}

func (s *staffService) List(ctx context.Context, req *dto.StaffListRequest) ([]dto.StaffResponse, int64, error) {
	list, total, err := s.repo.Staff.List(ctx, req.Keyword, req.GetPage(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出行政人员失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		result = append(result, *s.toStaffResponse(&list[i]))
	}
	return result, total, nil
}

func (s *staffService) Update(ctx context.Context, id string, req *dto.UpdateStaffRequest, callerID string) (*dto.StaffResponse, error) {
	staff, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("查询行政人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Position != nil {
		staff.Position = *req.Position
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	staff.UpdatedBy = &callerID

	if err := s.repo.Staff.Update(ctx, staff); err != nil {
		s.logger.Error("更新行政人员失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toStaffResponse(staff), nil
}

func (s *staffService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Staff.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaffNotFound
		}
		s.logger.Error("查询行政人员失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Staff.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除行政人员失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *staffService) toStaffResponse(st *model.Staff) *dto.StaffResponse {
	resp := &dto.StaffResponse{
		ID:        st.StaffID,
		Name:      st.Name,
		Email:     st.Email,
		Phone:     st.Phone,
		Position:  st.Position,
		IsActive:  st.IsActive,
		CreatedAt: st.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: st.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if st.UserID != nil {
		resp.UserID = *st.UserID
	}
	return resp
}
