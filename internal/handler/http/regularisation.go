package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendly-hq/tna-backend-go/internal/domain/regularisation"
	"github.com/attendly-hq/tna-backend-go/internal/handler/http/response"
)

type RegularisationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type regularisationHandlerImpl struct {
	regularisationService regularisation.RegularisationService
}

func NewRegularisationHandler(regularisationService regularisation.RegularisationService) RegularisationHandler {
	return &regularisationHandlerImpl{regularisationService: regularisationService}
}

// Submit implements RegularisationHandler. Non-admins file for their own
// employee record regardless of the body's employee_ref.
func (h *regularisationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req regularisation.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.EmployeeRef == "" || !callerIsAdmin(r.Context()) {
		employeeID, ok := callerEmployeeID(r.Context())
		if !ok {
			response.Forbidden(w, "No employee record linked to this account")
			return
		}
		req.EmployeeRef = employeeID
	}

	result, err := h.regularisationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Regularisation request submitted", result)
}

// Decide implements RegularisationHandler. Admin only, enforced by routing.
func (h *regularisationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req regularisation.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	if userID, ok := callerUserID(r.Context()); ok {
		req.ActorUserID = userID
	}

	result, err := h.regularisationService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Regularisation request processed", result)
}

// List implements RegularisationHandler. Admins see everything; everyone
// else sees their own requests.
func (h *regularisationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := regularisation.RequestFilter{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	if callerIsAdmin(r.Context()) {
		if v := r.URL.Query().Get("employee_id"); v != "" {
			filter.EmployeeID = &v
		}
	} else {
		employeeID, ok := callerEmployeeID(r.Context())
		if !ok {
			response.Forbidden(w, "No employee record linked to this account")
			return
		}
		filter.EmployeeID = &employeeID
	}

	result, err := h.regularisationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
