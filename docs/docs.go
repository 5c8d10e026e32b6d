// Package docs Jan Suraksha API.
//
// Documentation of the Jan Suraksha citizen complaint API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://api.jansuraksha.com
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//
// swagger:meta
package docs

import (
	"github.com/jansuraksha/jan-suraksha-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/complaint/track/{code} complaint trackComplaintID
// Gets the public status of a complaint by its tracking code.
// responses:
//   200: trackComplaintResponse

// Shows the public-safe projection of a complaint for the given tracking {code}
// swagger:response trackComplaintResponse
type trackComplaintResponseWrapper struct {
	// in:body
	Body models.ComplaintSummary
}

// swagger:route GET /api/v1/admin/stats admin dashboardStatsID
// Aggregated complaint statistics for the admin dashboard.
// responses:
//   200: dashboardStatsResponse

// Shows complaint totals, status buckets and resolution timing
// swagger:response dashboardStatsResponse
type dashboardStatsResponseWrapper struct {
	// in:body
	Body models.StatsResponse
}
