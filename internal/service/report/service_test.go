package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/holiday"
	"github.com/attendly-hq/tna-backend-go/internal/domain/leave"
	"github.com/attendly-hq/tna-backend-go/internal/domain/report"
)

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListForEmployeeBetween(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.Date.Before(from) && !att.Date.After(to) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) ListActiveBetween(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if h.IsActive && !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	leaves []leave.Leave
}

func (f *fakeLeaveRepo) ListApprovedBetween(_ context.Context, employeeID string, from, to time.Time) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved &&
			!l.StartDate.After(to) && !l.EndDate.Before(from) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if id == "emp-1" {
		return employee.Employee{ID: "emp-1"}, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func d(day int) time.Time {
	return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
}

func rec(day int, status attendance.Status, hours, overtime float64) attendance.Attendance {
	return attendance.Attendance{
		EmployeeID: "emp-1",
		Date:       d(day),
		Status:     status,
		TotalHours: hours,
		Overtime:   overtime,
	}
}

func summarize(t *testing.T, records []attendance.Attendance, holidays []holiday.Holiday, leaves []leave.Leave) report.MonthlySummary {
	t.Helper()
	svc := NewReportService(
		&fakeAttendanceRepo{records: records},
		&fakeHolidayRepo{holidays: holidays},
		&fakeLeaveRepo{leaves: leaves},
		fakeEmployeeRepo{},
	)
	summary, err := svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{
		EmployeeRef: "emp-1",
		Month:       3,
		Year:        2025,
	})
	require.NoError(t, err)
	return summary
}

// March 2025: 31 days, 10 weekend days (Sat/Sun), 21 weekdays.

func TestMonthlySummary_EmptyMonthIsAllWeekendOrAbsent(t *testing.T) {
	t.Parallel()

	summary := summarize(t, nil, nil, nil)

	assert.Equal(t, 10, summary.WeekendCount)
	assert.Equal(t, 21, summary.AbsentDays)
	assert.Equal(t, 0, summary.PresentDays)
	assert.Equal(t, 21.0, summary.LopDays)
}

func TestMonthlySummary_ClassificationPrecedence(t *testing.T) {
	t.Parallel()

	holidays := []holiday.Holiday{
		// Saturday: weekend wins over holiday.
		{ID: "h-1", Date: d(1), IsActive: true},
		// Monday working-day holiday.
		{ID: "h-2", Date: d(3), IsActive: true},
		// Inactive holiday on a Tuesday does not count.
		{ID: "h-3", Date: d(4), IsActive: false},
	}
	leaves := []leave.Leave{
		// Wed 5 - Thu 6 approved leave; overlaps the holiday on neither day.
		{ID: "l-1", EmployeeID: "emp-1", StartDate: d(5), EndDate: d(6), Status: leave.StatusApproved},
	}

	summary := summarize(t, nil, holidays, leaves)

	assert.Equal(t, 10, summary.WeekendCount)
	assert.Equal(t, 1, summary.HolidayCount)
	assert.Equal(t, 2, summary.LeaveCount)
	// 21 weekdays minus holiday minus two leave days.
	assert.Equal(t, 18, summary.AbsentDays)
}

func TestMonthlySummary_RecordedDays(t *testing.T) {
	t.Parallel()

	records := []attendance.Attendance{
		rec(3, attendance.StatusPresent, 8, 0),     // Mon
		rec(4, attendance.StatusLate, 7, 0),        // Tue: present + 1h missing
		rec(5, attendance.StatusHalfDay, 4, 0),     // Wed
		rec(6, attendance.StatusAbsent, 0, 0),      // Thu: true absence
		rec(7, attendance.StatusPresent, 10, 1.5),  // Fri: overtime
	}

	summary := summarize(t, records, nil, nil)

	assert.Equal(t, 3, summary.PresentDays)
	assert.Equal(t, 1, summary.HalfDays)
	// 1 recorded + 16 weekdays without any record.
	assert.Equal(t, 17, summary.AbsentDays)
	assert.Equal(t, 1.0, summary.MissingHours)
	assert.Equal(t, 1.5, summary.OvertimeHours)
	// 17 + 0.5*1 + 1/8
	assert.Equal(t, 17.63, summary.LopDays)
}

func TestMonthlySummary_StaleAbsentRecordOnHolidayIgnored(t *testing.T) {
	t.Parallel()

	records := []attendance.Attendance{
		// Absent record on a holiday Monday: ignored entirely.
		rec(3, attendance.StatusAbsent, 0, 0),
		// Absent record on a Saturday: also ignored.
		rec(8, attendance.StatusAbsent, 0, 0),
	}
	holidays := []holiday.Holiday{{ID: "h-1", Date: d(3), IsActive: true}}

	summary := summarize(t, records, holidays, nil)

	// Only the 20 remaining weekdays count as absent.
	assert.Equal(t, 20, summary.AbsentDays)
}

func TestMonthlySummary_OvertimeAccumulatesRegardlessOfStatus(t *testing.T) {
	t.Parallel()

	records := []attendance.Attendance{
		rec(3, attendance.StatusPresent, 9, 1),
		rec(4, attendance.StatusHalfDay, 4, 0.5),
		rec(5, attendance.StatusAbsent, 0, 0.25),
	}

	summary := summarize(t, records, nil, nil)

	assert.InDelta(t, 1.75, summary.OvertimeHours, 0.001)
}

func TestMonthlySummary_UnknownEmployee(t *testing.T) {
	t.Parallel()

	svc := NewReportService(&fakeAttendanceRepo{}, &fakeHolidayRepo{}, &fakeLeaveRepo{}, fakeEmployeeRepo{})

	_, err := svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{
		EmployeeRef: "emp-404",
		Month:       3,
		Year:        2025,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
