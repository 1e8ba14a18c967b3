package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/attendly-hq/tna-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/tna-backend-go/internal/domain/employee"
	"github.com/attendly-hq/tna-backend-go/internal/domain/holiday"
	"github.com/attendly-hq/tna-backend-go/internal/domain/leave"
	"github.com/attendly-hq/tna-backend-go/internal/domain/report"
)

// fullDayHours is the baseline against which shortfall hours accumulate.
const fullDayHours = 8.0

type service struct {
	attendanceRepo attendance.AttendanceRepository
	holidayRepo    holiday.HolidayRepository
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
}

// NewReportService creates the monthly summary aggregator.
func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) report.ReportService {
	return &service{
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
	}
}

// GetMonthlySummary implements report.ReportService.
func (s *service) GetMonthlySummary(ctx context.Context, req report.MonthlySummaryRequest) (report.MonthlySummary, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlySummary{}, err
	}

	emp, err := employee.ResolveRef(ctx, s.employeeRepo, req.EmployeeRef)
	if err != nil {
		return report.MonthlySummary{}, err
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListForEmployeeBetween(ctx, emp.ID, from, to)
	if err != nil {
		return report.MonthlySummary{}, err
	}
	holidays, err := s.holidayRepo.ListActiveBetween(ctx, from, to)
	if err != nil {
		return report.MonthlySummary{}, err
	}
	leaves, err := s.leaveRepo.ListApprovedBetween(ctx, emp.ID, from, to)
	if err != nil {
		return report.MonthlySummary{}, err
	}

	byDate := make(map[string]attendance.Attendance, len(records))
	for _, att := range records {
		byDate[att.Date.Format("2006-01-02")] = att
	}
	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date.Format("2006-01-02")] = true
	}

	summary := report.MonthlySummary{
		EmployeeID: emp.ID,
		Month:      req.Month,
		Year:       req.Year,
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		isWeekend := day.Weekday() == time.Saturday || day.Weekday() == time.Sunday
		isHoliday := holidaySet[key]
		onLeave := coveredByLeave(leaves, day)

		att, hasRecord := byDate[key]
		if !hasRecord {
			// Precedence: weekend, then holiday, then leave; anything left
			// over is an unauthorized absence.
			switch {
			case isWeekend:
				summary.WeekendCount++
			case isHoliday:
				summary.HolidayCount++
			case onLeave:
				summary.LeaveCount++
			default:
				summary.AbsentDays++
			}
			continue
		}

		summary.OvertimeHours += att.Overtime

		switch att.Status {
		case attendance.StatusPresent, attendance.StatusLate:
			summary.PresentDays++
			if att.TotalHours < fullDayHours {
				summary.MissingHours += fullDayHours - att.TotalHours
			}
		case attendance.StatusHalfDay:
			summary.HalfDays++
		case attendance.StatusAbsent:
			// An Absent record on a non-working day is stale; ignore it.
			if !isWeekend && !isHoliday && !onLeave {
				summary.AbsentDays++
			}
		}
	}

	summary.OvertimeHours = round2(summary.OvertimeHours)
	summary.MissingHours = round2(summary.MissingHours)
	summary.LopDays = round2(float64(summary.AbsentDays) +
		0.5*float64(summary.HalfDays) +
		summary.MissingHours/fullDayHours)

	return summary, nil
}

func coveredByLeave(leaves []leave.Leave, day time.Time) bool {
	for i := range leaves {
		if leaves[i].Covers(day) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
