package regularisation

import (
	"context"
)

// RegularisationService runs the correction workflow: employee-initiated
// submission bounded by the monthly quota, followed by a single
// administrative decision.
type RegularisationService interface {
	// Submit files a new request in Pending state and notifies
	// administrators.
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// Decide transitions a request to Approved or Rejected. Approval
	// rewrites the day's sessions with the corrected bounds.
	Decide(ctx context.Context, req DecideRequest) (RequestResponse, error)

	// List retrieves requests with filters (admin view).
	List(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)
}
