package regularisation

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/notification"
	"github.com/attendly-hq/tna-backend-go/internal/domain/regularisation"
	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
	"github.com/attendly-hq/tna-backend-go/internal/domain/user"
)

type service struct {
	requestRepo    regularisation.RequestRepository
	employeeRepo   employee.EmployeeRepository
	timeLogRepo    timelog.TimeLogRepository
	userRepo       user.UserRepository
	timeLogService timelog.TimeLogService
	notifier       notification.Service
}

// NewRegularisationService creates the retroactive-correction workflow.
func NewRegularisationService(
	requestRepo regularisation.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	timeLogRepo timelog.TimeLogRepository,
	userRepo user.UserRepository,
	timeLogService timelog.TimeLogService,
	notifier notification.Service,
) regularisation.RegularisationService {
	return &service{
		requestRepo:    requestRepo,
		employeeRepo:   employeeRepo,
		timeLogRepo:    timeLogRepo,
		userRepo:       userRepo,
		timeLogService: timeLogService,
		notifier:       notifier,
	}
}

// Submit implements regularisation.RegularisationService.
func (s *service) Submit(ctx context.Context, req regularisation.SubmitRequest) (regularisation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularisation.RequestResponse{}, err
	}

	emp, err := employee.ResolveRef(ctx, s.employeeRepo, req.EmployeeRef)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	// The quota counts every request filed in the calendar month, whatever
	// its outcome.
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	count, err := s.requestRepo.CountForEmployeeBetween(ctx, emp.ID, monthStart, monthEnd)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}
	if count >= regularisation.MonthlyQuota {
		return regularisation.RequestResponse{}, regularisation.ErrQuotaExceeded
	}

	newCheckIn, newCheckOut, err := correctionBounds(date, req.NewCheckIn, req.NewCheckOut)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	request := regularisation.Request{
		EmployeeID:  emp.ID,
		Date:        date,
		NewCheckIn:  newCheckIn,
		NewCheckOut: newCheckOut,
		Reason:      req.Reason,
		Status:      regularisation.StatusPending,
	}

	// Snapshot the current bounds for the admin's review, when a log exists.
	log, err := s.timeLogRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}
	if log != nil {
		request.TimeLogID = &log.ID
		if len(log.Sessions) > 0 {
			first := log.Sessions[0].CheckIn
			request.OriginalCheckIn = &first
			request.OriginalCheckOut = log.Sessions[len(log.Sessions)-1].CheckOut
		}
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}

	s.notifyAdmins(ctx, emp, created)

	return toResponse(created), nil
}

// Decide implements regularisation.RegularisationService.
func (s *service) Decide(ctx context.Context, req regularisation.DecideRequest) (regularisation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularisation.RequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return regularisation.RequestResponse{}, err
	}
	if request.IsProcessed() {
		return regularisation.RequestResponse{}, regularisation.ErrAlreadyProcessed
	}

	request.Status = regularisation.Status(req.Status)
	request.AdminComment = req.AdminComment
	if req.ActorUserID != "" {
		actor := req.ActorUserID
		request.ActionBy = &actor
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return regularisation.RequestResponse{}, err
	}

	corrected := false
	if request.Status == regularisation.StatusApproved {
		// When no log can be located the approval still stands; it just has
		// nothing to correct.
		corrected, err = s.timeLogService.ReplaceSessions(ctx,
			request.TimeLogID, request.EmployeeID, request.Date,
			request.NewCheckIn, request.NewCheckOut)
		if err != nil {
			return regularisation.RequestResponse{}, err
		}
	}

	s.notifyEmployee(ctx, request, corrected)

	return toResponse(request), nil
}

// List implements regularisation.RegularisationService.
func (s *service) List(ctx context.Context, filter regularisation.RequestFilter) (regularisation.ListRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return regularisation.ListRequestsResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return regularisation.ListRequestsResponse{}, err
	}

	responses := make([]regularisation.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toResponse(request))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return regularisation.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// correctionBounds anchors the corrected wall-clock pair on the request
// date. A check-out at or before the check-in rolls over to the next day.
func correctionBounds(date time.Time, checkInClock, checkOutClock string) (time.Time, time.Time, error) {
	in, ok := shift.ParseClock(checkInClock)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("unparseable check-in time %q", checkInClock)
	}
	out, ok := shift.ParseClock(checkOutClock)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("unparseable check-out time %q", checkOutClock)
	}

	checkIn := time.Date(date.Year(), date.Month(), date.Day(), in.Hour(), in.Minute(), 0, 0, time.UTC)
	checkOut := time.Date(date.Year(), date.Month(), date.Day(), out.Hour(), out.Minute(), 0, 0, time.UTC)
	if !checkOut.After(checkIn) {
		checkOut = checkOut.Add(24 * time.Hour)
	}

	return checkIn, checkOut, nil
}

func (s *service) notifyAdmins(ctx context.Context, emp employee.Employee, request regularisation.Request) {
	admins, err := s.userRepo.ListByRole(ctx, user.RoleAdmin)
	if err != nil {
		return
	}
	title := "New regularisation request"
	message := fmt.Sprintf("%s requested a correction for %s: %s",
		emp.FullName(), request.Date.Format("2006-01-02"), request.Reason)
	for _, admin := range admins {
		s.notifier.Notify(ctx, admin.ID, title, message, notification.SeverityInfo)
	}
}

func (s *service) notifyEmployee(ctx context.Context, request regularisation.Request, corrected bool) {
	recipient := request.EmployeeID
	if emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID); err == nil && emp.UserID != nil {
		recipient = *emp.UserID
	}

	title := fmt.Sprintf("Regularisation %s", request.Status)
	message := fmt.Sprintf("Your correction request for %s was %s.",
		request.Date.Format("2006-01-02"), request.Status)
	if request.Status == regularisation.StatusApproved && !corrected {
		message += " No matching time log was found, so no records were changed."
	}
	s.notifier.Notify(ctx, recipient, title, message, notification.SeverityInfo)
}

func toResponse(request regularisation.Request) regularisation.RequestResponse {
	resp := regularisation.RequestResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		EmployeeName: request.EmployeeName,
		TimeLogID:    request.TimeLogID,
		Date:         request.Date.Format("2006-01-02"),
		NewCheckIn:   request.NewCheckIn.Format(time.RFC3339),
		NewCheckOut:  request.NewCheckOut.Format(time.RFC3339),
		Reason:       request.Reason,
		Status:       request.Status,
		AdminComment: request.AdminComment,
		ActionBy:     request.ActionBy,
		CreatedAt:    request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    request.UpdatedAt.Format(time.RFC3339),
	}
	if request.OriginalCheckIn != nil {
		v := request.OriginalCheckIn.Format(time.RFC3339)
		resp.OriginalCheckIn = &v
	}
	if request.OriginalCheckOut != nil {
		v := request.OriginalCheckOut.Format(time.RFC3339)
		resp.OriginalCheckOut = &v
	}
	return resp
}
