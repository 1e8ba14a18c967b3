package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/attendly-hq/tna-backend-go/internal/domain/timelog"
	"github.com/attendly-hq/tna-backend-go/internal/handler/http/response"
)

type TimeLogHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type timeLogHandlerImpl struct {
	timeLogService timelog.TimeLogService
}

func NewTimeLogHandler(timeLogService timelog.TimeLogService) TimeLogHandler {
	return &timeLogHandlerImpl{timeLogService: timeLogService}
}

// CheckIn implements TimeLogHandler. Non-admin callers always act on their
// own linked employee, whatever the body says.
func (h *timeLogHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req timelog.CheckInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if !h.fillEmployeeRef(w, r, &req.EmployeeRef) {
		return
	}

	result, err := h.timeLogService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

// CheckOut implements TimeLogHandler.
func (h *timeLogHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req timelog.CheckOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if !h.fillEmployeeRef(w, r, &req.EmployeeRef) {
		return
	}

	result, err := h.timeLogService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

// List implements TimeLogHandler.
func (h *timeLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timelog.TimeLogFilter{
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := r.URL.Query().Get("employee_ref"); v != "" {
		filter.EmployeeRef = &v
	}

	// Non-admins only see their own logs.
	if !callerIsAdmin(r.Context()) {
		employeeID, ok := callerEmployeeID(r.Context())
		if !ok {
			response.Forbidden(w, "No employee record linked to this account")
			return
		}
		filter.EmployeeRef = &employeeID
	}

	result, err := h.timeLogService.GetLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.TimeLogs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// fillEmployeeRef defaults the target to the caller's own employee and stops
// non-admins from acting on someone else's behalf. Returns false when it has
// already written an error response.
func (h *timeLogHandlerImpl) fillEmployeeRef(w http.ResponseWriter, r *http.Request, ref *string) bool {
	if *ref != "" && callerIsAdmin(r.Context()) {
		return true
	}

	employeeID, ok := callerEmployeeID(r.Context())
	if !ok {
		response.Forbidden(w, "No employee record linked to this account")
		return false
	}
	*ref = employeeID
	return true
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
