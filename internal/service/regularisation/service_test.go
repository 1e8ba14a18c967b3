package regularisation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/notification"
	"github.com/attendly-hq/tna-backend-go/internal/domain/regularisation"
	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
	"github.com/attendly-hq/tna-backend-go/internal/domain/user"
)

type fakeRequestRepo struct {
	requests map[string]regularisation.Request
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]regularisation.Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req regularisation.Request) (regularisation.Request, error) {
	f.nextID++
	req.ID = fmt.Sprintf("req-%d", f.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (regularisation.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return regularisation.Request{}, regularisation.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req regularisation.Request) error {
	if _, ok := f.requests[req.ID]; !ok {
		return regularisation.ErrRequestNotFound
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) CountForEmployeeBetween(_ context.Context, employeeID string, from, to time.Time) (int, error) {
	count := 0
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && !req.Date.Before(from) && req.Date.Before(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRequestRepo) List(_ context.Context, filter regularisation.RequestFilter) ([]regularisation.Request, int64, error) {
	var out []regularisation.Request
	for _, req := range f.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeTimeLogRepo struct {
	logs []timelog.TimeLog
}

func (f *fakeTimeLogRepo) Create(_ context.Context, log timelog.TimeLog) (timelog.TimeLog, error) {
	return log, nil
}

func (f *fakeTimeLogRepo) Update(_ context.Context, _ timelog.TimeLog) error { return nil }

func (f *fakeTimeLogRepo) GetByID(_ context.Context, id string) (timelog.TimeLog, error) {
	for _, log := range f.logs {
		if log.ID == id {
			return log, nil
		}
	}
	return timelog.TimeLog{}, timelog.ErrTimeLogNotFound
}

func (f *fakeTimeLogRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*timelog.TimeLog, error) {
	for _, log := range f.logs {
		if log.EmployeeID == employeeID && log.Date.Equal(date) {
			copied := log
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTimeLogRepo) GetLatestSince(_ context.Context, _ string, _ time.Time) (*timelog.TimeLog, error) {
	return nil, nil
}

func (f *fakeTimeLogRepo) ListOpenBefore(_ context.Context, _ string, _ time.Time) ([]timelog.TimeLog, error) {
	return nil, nil
}

func (f *fakeTimeLogRepo) ListAllOpenBefore(_ context.Context, _ time.Time) ([]timelog.TimeLog, error) {
	return nil, nil
}

func (f *fakeTimeLogRepo) List(_ context.Context, _ timelog.TimeLogFilter, _ *string) ([]timelog.TimeLog, int64, error) {
	return nil, 0, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type replaceCall struct {
	logID      *string
	employeeID string
	date       time.Time
	checkIn    time.Time
	checkOut   time.Time
}

type fakeTimeLogService struct {
	timelog.TimeLogService
	calls  []replaceCall
	found  bool
	failed error
}

func (f *fakeTimeLogService) ReplaceSessions(_ context.Context, logID *string, employeeID string, date time.Time, checkIn, checkOut time.Time) (bool, error) {
	f.calls = append(f.calls, replaceCall{logID, employeeID, date, checkIn, checkOut})
	return f.found, f.failed
}

type sentNote struct {
	recipientID string
	title       string
}

type recordingNotifier struct {
	sent []sentNote
}

func (r *recordingNotifier) Notify(_ context.Context, recipientID, title, _ string, _ notification.Severity) {
	r.sent = append(r.sent, sentNote{recipientID: recipientID, title: title})
}

func (r *recordingNotifier) Subscribe(_ context.Context, _ string) (<-chan notification.Event, func()) {
	return nil, func() {}
}

type fixture struct {
	svc      regularisation.RegularisationService
	requests *fakeRequestRepo
	tracker  *fakeTimeLogService
	notifier *recordingNotifier
}

var empUserID = "user-emp-1"

func newFixture(logs []timelog.TimeLog) *fixture {
	requests := newFakeRequestRepo()
	tracker := &fakeTimeLogService{found: true}
	notifier := &recordingNotifier{}

	svc := NewRegularisationService(
		requests,
		&fakeEmployeeRepo{employees: []employee.Employee{
			{ID: "emp-1", UserID: &empUserID, Email: "ravi@attendly.dev", FirstName: "Ravi", LastName: "Menon"},
		}},
		&fakeTimeLogRepo{logs: logs},
		&fakeUserRepo{users: []user.User{
			{ID: "admin-1", Role: user.RoleAdmin},
			{ID: "admin-2", Role: user.RoleAdmin},
			{ID: "user-3", Role: user.RoleEmployee},
		}},
		tracker,
		notifier,
	)

	return &fixture{svc: svc, requests: requests, tracker: tracker, notifier: notifier}
}

func TestSubmit_CreatesPendingAndNotifiesAdmins(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	checkIn := date.Add(10 * time.Hour)
	f := newFixture([]timelog.TimeLog{{
		ID:         "log-1",
		EmployeeID: "emp-1",
		Date:       date,
		Sessions:   []timelog.Session{{CheckIn: checkIn}},
	}})

	resp, err := f.svc.Submit(context.Background(), regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Date:        "2025-03-10",
		Reason:      "forgot to check in on arrival",
		NewCheckIn:  "09:00 AM",
		NewCheckOut: "06:00 PM",
	})
	require.NoError(t, err)

	assert.Equal(t, regularisation.StatusPending, resp.Status)
	require.NotNil(t, resp.TimeLogID)
	assert.Equal(t, "log-1", *resp.TimeLogID)
	require.NotNil(t, resp.OriginalCheckIn)
	assert.Equal(t, checkIn.Format(time.RFC3339), *resp.OriginalCheckIn)
	assert.Nil(t, resp.OriginalCheckOut)

	// Both admins notified, the regular user not.
	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, "admin-1", f.notifier.sent[0].recipientID)
	assert.Equal(t, "admin-2", f.notifier.sent[1].recipientID)
}

func TestSubmit_QuotaBlocksFourthRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	submit := regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Reason:      "missed punch",
		NewCheckIn:  "09:00",
		NewCheckOut: "17:00",
	}

	for _, d := range []string{"2025-03-03", "2025-03-11", "2025-03-19"} {
		submit.Date = d
		_, err := f.svc.Submit(context.Background(), submit)
		require.NoError(t, err)
	}

	submit.Date = "2025-03-27"
	_, err := f.svc.Submit(context.Background(), submit)
	assert.ErrorIs(t, err, regularisation.ErrQuotaExceeded)

	// A different month starts a fresh quota.
	submit.Date = "2025-04-02"
	_, err = f.svc.Submit(context.Background(), submit)
	assert.NoError(t, err)
}

func TestSubmit_OvernightCheckOutRollsOver(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)

	resp, err := f.svc.Submit(context.Background(), regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Date:        "2025-03-10",
		Reason:      "night shift punch lost",
		NewCheckIn:  "10:00 PM",
		NewCheckOut: "06:00 AM",
	})
	require.NoError(t, err)

	in, _ := time.Parse(time.RFC3339, resp.NewCheckIn)
	out, _ := time.Parse(time.RFC3339, resp.NewCheckOut)
	assert.Equal(t, 10, in.Day())
	assert.Equal(t, 11, out.Day())
	assert.Equal(t, 8*time.Hour, out.Sub(in))
}

func TestDecide_ApprovedRewritesSessions(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)

	created, err := f.svc.Submit(context.Background(), regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Date:        "2025-03-10",
		Reason:      "missed punch",
		NewCheckIn:  "09:00 AM",
		NewCheckOut: "06:00 PM",
	})
	require.NoError(t, err)
	f.notifier.sent = nil

	resp, err := f.svc.Decide(context.Background(), regularisation.DecideRequest{
		ID:          created.ID,
		Status:      "Approved",
		ActorUserID: "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, regularisation.StatusApproved, resp.Status)
	require.NotNil(t, resp.ActionBy)
	assert.Equal(t, "admin-1", *resp.ActionBy)

	require.Len(t, f.tracker.calls, 1)
	call := f.tracker.calls[0]
	assert.Equal(t, "emp-1", call.employeeID)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), call.checkIn)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), call.checkOut)

	// The affected employee is notified of the outcome through their user account.
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "user-emp-1", f.notifier.sent[0].recipientID)
}

func TestDecide_RejectedLeavesLogUntouched(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)

	created, err := f.svc.Submit(context.Background(), regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Date:        "2025-03-10",
		Reason:      "missed punch",
		NewCheckIn:  "09:00 AM",
		NewCheckOut: "06:00 PM",
	})
	require.NoError(t, err)

	comment := "no supporting evidence"
	resp, err := f.svc.Decide(context.Background(), regularisation.DecideRequest{
		ID:           created.ID,
		Status:       "Rejected",
		AdminComment: &comment,
		ActorUserID:  "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, regularisation.StatusRejected, resp.Status)
	assert.Empty(t, f.tracker.calls)
}

func TestDecide_ApprovalWithoutLogStillRecords(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)
	f.tracker.found = false

	created, err := f.svc.Submit(context.Background(), regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Date:        "2025-03-10",
		Reason:      "missed punch",
		NewCheckIn:  "09:00 AM",
		NewCheckOut: "06:00 PM",
	})
	require.NoError(t, err)

	resp, err := f.svc.Decide(context.Background(), regularisation.DecideRequest{
		ID:          created.ID,
		Status:      "Approved",
		ActorUserID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, regularisation.StatusApproved, resp.Status)

	stored, err := f.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, regularisation.StatusApproved, stored.Status)
}

func TestDecide_TerminalStateIsFinal(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)

	created, err := f.svc.Submit(context.Background(), regularisation.SubmitRequest{
		EmployeeRef: "emp-1",
		Date:        "2025-03-10",
		Reason:      "missed punch",
		NewCheckIn:  "09:00 AM",
		NewCheckOut: "06:00 PM",
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), regularisation.DecideRequest{
		ID: created.ID, Status: "Rejected", ActorUserID: "admin-1",
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), regularisation.DecideRequest{
		ID: created.ID, Status: "Approved", ActorUserID: "admin-1",
	})
	assert.ErrorIs(t, err, regularisation.ErrAlreadyProcessed)
}

func TestDecide_UnknownRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(nil)

	_, err := f.svc.Decide(context.Background(), regularisation.DecideRequest{
		ID: "req-404", Status: "Approved", ActorUserID: "admin-1",
	})
	assert.ErrorIs(t, err, regularisation.ErrRequestNotFound)
}
