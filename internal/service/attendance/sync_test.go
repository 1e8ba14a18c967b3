package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/tna-backend-go/internal/domain/shift"
	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // keyed employee|date
	upserts int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.upserts++
	k := f.key(att.EmployeeID, att.Date)
	if existing, ok := f.records[k]; ok {
		att.ID = existing.ID
		att.Notes = existing.Notes
	} else {
		att.ID = "att-" + k
	}
	f.records[k] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.ID == id {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if att, ok := f.records[f.key(employeeID, date)]; ok {
		return &att, nil
	}
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

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	for k, existing := range f.records {
		if existing.ID == att.ID {
			f.records[k] = att
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func timePtr(t time.Time) *time.Time { return &t }

func closedLog(employeeID string, date time.Time, checkIn, checkOut time.Time, net float64, s *shift.Resolved) *timelog.TimeLog {
	return &timelog.TimeLog{
		ID:              "log-1",
		EmployeeID:      employeeID,
		Date:            date,
		Sessions:        []timelog.Session{{CheckIn: checkIn, CheckOut: timePtr(checkOut)}},
		Shift:           s,
		NetWorkingHours: net,
	}
}

func TestSyncFromLog_PresentByShiftFraction(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	s := NewSyncer(repo)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	// 9h shift: present threshold 6.3h.
	resolved := &shift.Resolved{StartTime: "09:00 AM", EndTime: "06:00 PM"}
	log := closedLog("emp-1", date,
		date.Add(9*time.Hour), date.Add(16*time.Hour), 6.5, resolved)

	require.NoError(t, s.SyncFromLog(context.Background(), log))

	att, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", date)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, attendance.StatusPresent, att.Status)
	assert.Equal(t, 6.5, att.TotalHours)
}

func TestSyncFromLog_HalfDayAndAbsentThresholds(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	// 8h shift: present >= 5.6, half-day >= 3.2.
	resolved := &shift.Resolved{StartTime: "09:00 AM", EndTime: "05:00 PM"}

	tests := []struct {
		name string
		net  float64
		want attendance.Status
	}{
		{"at present threshold", 5.6, attendance.StatusPresent},
		{"between thresholds", 4.0, attendance.StatusHalfDay},
		{"at half-day threshold", 3.2, attendance.StatusHalfDay},
		{"below half-day", 3.0, attendance.StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAttendanceRepo()
			s := NewSyncer(repo)

			log := closedLog("emp-1", date,
				date.Add(9*time.Hour), date.Add(12*time.Hour), tt.net, resolved)
			require.NoError(t, s.SyncFromLog(context.Background(), log))

			att, _ := repo.GetByEmployeeAndDate(context.Background(), "emp-1", date)
			require.NotNil(t, att)
			assert.Equal(t, tt.want, att.Status)
		})
	}
}

func TestSyncFromLog_OpenSessionAlwaysPresent(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	s := NewSyncer(repo)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	log := &timelog.TimeLog{
		ID:         "log-1",
		EmployeeID: "emp-1",
		Date:       date,
		Sessions:   []timelog.Session{{CheckIn: date.Add(9 * time.Hour)}},
	}

	require.NoError(t, s.SyncFromLog(context.Background(), log))

	att, _ := repo.GetByEmployeeAndDate(context.Background(), "emp-1", date)
	require.NotNil(t, att)
	assert.Equal(t, attendance.StatusPresent, att.Status)
	assert.Nil(t, att.CheckOut)
	require.NotNil(t, att.CheckIn)
	assert.Equal(t, date.Add(9*time.Hour), *att.CheckIn)
}

func TestSyncFromLog_NoShiftDefaultsToEightHours(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	s := NewSyncer(repo)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	log := closedLog("emp-1", date, date.Add(9*time.Hour), date.Add(15*time.Hour), 6.0, nil)

	require.NoError(t, s.SyncFromLog(context.Background(), log))

	att, _ := repo.GetByEmployeeAndDate(context.Background(), "emp-1", date)
	require.NotNil(t, att)
	// 6h against the 8h default clears the 5.6h present threshold.
	assert.Equal(t, attendance.StatusPresent, att.Status)
}

func TestSyncFromLog_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeAttendanceRepo()
	s := NewSyncer(repo)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	log := closedLog("emp-1", date, date.Add(9*time.Hour), date.Add(17*time.Hour), 8.0, nil)

	require.NoError(t, s.SyncFromLog(context.Background(), log))
	require.NoError(t, s.SyncFromLog(context.Background(), log))

	assert.Equal(t, 2, repo.upserts)
	records, total, err := repo.List(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)
}
