package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/hostel-portal/auth-service/internal/events"
	"github.com/hostel-portal/auth-service/internal/models"
	"github.com/hostel-portal/auth-service/internal/repositories"
	"github.com/hostel-portal/auth-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

// GetProfile loads the user behind a verified token. The record may have
// been removed out-of-band since the token was issued.
func (s *userService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user.ToProfile(), nil
}

// UpdateOwnProfile applies the self-service partial update. Only the
// student-profile fields and the mess status flag are mutable on this path;
// absent fields are left untouched.
func (s *userService) UpdateOwnProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	update := repositories.UserUpdate{
		HostelBlock:     req.HostelBlock,
		RoomNumber:      req.RoomNumber,
		CourseYear:      req.CourseYear,
		Branch:          req.Branch,
		IsInactiveToday: req.IsInactiveToday,
	}
	if update.Empty() {
		return s.GetProfile(ctx, id)
	}

	user, err := s.repo.User().UpdateByID(ctx, id, update)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.publish(ctx, events.EventProfileUpdated, map[string]string{"userId": user.UserID})

	return user.ToProfile(), nil
}

// AdminUpdateUser applies the admin partial update to the record matching
// the human login identifier. The mutable field set is a strict superset of
// the self-service one; fields outside it never reach the store.
func (s *userService) AdminUpdateUser(ctx context.Context, targetUserID string, req *models.AdminUpdateUserRequest) (*models.Profile, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}
	if req.Email != nil && !validator.IsValidEmail(*req.Email) {
		return nil, ErrInvalidEmail
	}

	update := repositories.UserUpdate{
		Role:            req.Role,
		Email:           req.Email,
		Mobile:          req.Mobile,
		HostelBlock:     req.HostelBlock,
		RoomNumber:      req.RoomNumber,
		CourseYear:      req.CourseYear,
		Branch:          req.Branch,
		IsInactiveToday: req.IsInactiveToday,
	}
	if update.Empty() {
		user, err := s.repo.User().GetByUserID(ctx, targetUserID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("admin update user: %w", err)
		}
		return user.ToProfile(), nil
	}

	user, err := s.repo.User().UpdateByUserID(ctx, targetUserID, update)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("admin update user: %w", err)
	}

	s.publish(ctx, events.EventUserAdminUpdate, map[string]string{"userId": user.UserID})

	return user.ToProfile(), nil
}

// ListUsers returns a page of user profiles for the admin console.
func (s *userService) ListUsers(ctx context.Context, filters repositories.UserFilters) (*models.UserListResponse, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 10
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	profiles := make([]*models.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.ToProfile())
	}

	return &models.UserListResponse{
		Users: profiles,
		Total: total,
		Page:  (filters.Offset / filters.Limit) + 1,
		Size:  filters.Limit,
	}, nil
}

var exportHeader = []string{
	"User ID", "Role", "Email", "Mobile", "Hostel Block", "Room Number",
	"Course Year", "Branch", "Inactive Today", "Created At",
}

// ExportUsers renders the full user directory as an xlsx workbook. The
// credential field never appears in the export.
func (s *userService) ExportUsers(ctx context.Context) ([]byte, error) {
	users, _, err := s.repo.User().List(ctx, repositories.UserFilters{})
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Users"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, u := range users {
		values := []interface{}{
			u.UserID, string(u.Role), u.Email, u.Mobile, u.HostelBlock,
			u.RoomNumber, u.CourseYear, u.Branch, u.IsInactiveToday,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *userService) publish(ctx context.Context, eventType string, data interface{}) {
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Warn("event publish failed", "event_type", eventType, "error", err)
	}
}
