package http

import (
	"net/http"

	"github.com/attendly-hq/tna-backend-go/internal/domain/report"
	"github.com/attendly-hq/tna-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlySummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// MonthlySummary implements ReportHandler. Admins may summarize any
// employee; everyone else gets their own summary.
func (h *reportHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlySummaryRequest{
		EmployeeRef: r.URL.Query().Get("employee_ref"),
		Month:       queryInt(r, "month"),
		Year:        queryInt(r, "year"),
	}

	if req.EmployeeRef == "" || !callerIsAdmin(r.Context()) {
		employeeID, ok := callerEmployeeID(r.Context())
		if !ok {
			response.Forbidden(w, "No employee record linked to this account")
			return
		}
		req.EmployeeRef = employeeID
	}

	result, err := h.reportService.GetMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
