package attendance

import (
	"context"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
)

type service struct {
	attendanceRepo attendance.AttendanceRepository
}

// NewAttendanceService creates the admin/reporting surface over the ledger.
func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &service{attendanceRepo: attendanceRepo}
}

// List implements attendance.AttendanceService.
func (s *service) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toResponse(att))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// Get implements attendance.AttendanceService.
func (s *service) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(att), nil
}

// Update implements attendance.AttendanceService. An administrative override
// coexists with synchronizer overwrites; whichever runs later wins.
func (s *service) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil && *req.CheckIn != "" {
		t, _ := time.Parse(time.RFC3339, *req.CheckIn)
		att.CheckIn = &t
	}
	if req.CheckOut != nil && *req.CheckOut != "" {
		t, _ := time.Parse(time.RFC3339, *req.CheckOut)
		att.CheckOut = &t
	}
	if req.TotalHours != nil {
		att.TotalHours = *req.TotalHours
	}
	if req.Overtime != nil {
		att.Overtime = *req.Overtime
	}
	if req.Status != nil && *req.Status != "" {
		att.Status = attendance.Status(*req.Status)
	}
	if req.Notes != nil {
		att.Notes = req.Notes
	}

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(updated), nil
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format("2006-01-02"),
		ShiftID:      att.ShiftID,
		TotalHours:   att.TotalHours,
		Overtime:     att.Overtime,
		Status:       att.Status,
		Notes:        att.Notes,
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
	if att.CheckIn != nil {
		v := att.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if att.CheckOut != nil {
		v := att.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
