package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jansuraksha/jan-suraksha-api/databases/mocks"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

// filters carrying a createdAt window are the month/week counters
func createdAtFilter(filter interface{}) bool {
	m, ok := filter.(bson.M)
	if !ok {
		return false
	}
	_, has := m["createdAt"]
	return has
}

func TestDashboardStatsHandler_Success(t *testing.T) {
	db := mocks.NewComplaintDatabase(t)
	db.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(10), nil)
	db.On("CountDocuments", mock.Anything, mock.MatchedBy(createdAtFilter)).Return(int64(4), nil)
	db.On("CountDocuments", mock.Anything, bson.M{"isUrgent": true}).Return(int64(3), nil)

	breakdownCursor := &mocks.CursorHelper{}
	breakdownCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		rows := args.Get(0).(*[]statusCountRow)
		*rows = []statusCountRow{
			{Status: "Pending", Count: 5},
			{Status: "submitted", Count: 1},
			{Status: "in_progress", Count: 2},
			{Status: "resolved", Count: 2},
		}
	})

	avgCursor := &mocks.CursorHelper{}
	avgCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		rows := args.Get(0).(*[]avgResolutionRow)
		*rows = []avgResolutionRow{{AvgDays: 2.468}}
	})

	db.On("Aggregate", mock.Anything, mock.MatchedBy(func(p interface{}) bool {
		pipeline, ok := p.([]bson.M)
		return ok && len(pipeline) == 1
	})).Return(breakdownCursor, nil)
	db.On("Aggregate", mock.Anything, mock.MatchedBy(func(p interface{}) bool {
		pipeline, ok := p.([]bson.M)
		return ok && len(pipeline) == 3
	})).Return(avgCursor, nil)

	s := Stats{DB: db}

	req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()
	s.DashboardStatsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(10), resp.Data.TotalComplaints)
	assert.Equal(t, int64(4), resp.Data.ThisMonth)
	assert.Equal(t, int64(4), resp.Data.ThisWeek)
	assert.Equal(t, int64(3), resp.Data.UrgentCount)
	assert.Equal(t, int64(7), resp.Data.NormalCount)
	assert.Equal(t, "30.0%", resp.Data.UrgentRatio)
	// legacy "Pending" rows fold into the submitted bucket
	assert.Equal(t, int64(6), resp.Data.ByStatus.Submitted)
	assert.Equal(t, int64(2), resp.Data.ByStatus.InProgress)
	assert.Equal(t, int64(2), resp.Data.ByStatus.Resolved)
	assert.Equal(t, int64(0), resp.Data.ByStatus.Closed)
	assert.Equal(t, 2.5, resp.Data.AvgResolutionDays)
	assert.NotEmpty(t, resp.GeneratedAt)
	assert.NotZero(t, resp.ServerTime)
}

func TestDashboardStatsHandler_EmptyDatabase(t *testing.T) {
	db := mocks.NewComplaintDatabase(t)
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)

	emptyCursor := &mocks.CursorHelper{}
	emptyCursor.On("Decode", mock.Anything).Return(nil)
	db.On("Aggregate", mock.Anything, mock.Anything).Return(emptyCursor, nil)

	s := Stats{DB: db}

	req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()
	s.DashboardStatsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Data.TotalComplaints)
	assert.Equal(t, "0.0%", resp.Data.UrgentRatio)
	assert.Equal(t, 0.0, resp.Data.AvgResolutionDays)
}

func TestDashboardStatsHandler_UrgentExceedsTotal(t *testing.T) {
	// an urgent filing landing between the two counts can push the urgent
	// count past the earlier total; the handler must not report a negative
	// normal count
	db := mocks.NewComplaintDatabase(t)
	db.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(1), nil)
	db.On("CountDocuments", mock.Anything, mock.MatchedBy(createdAtFilter)).Return(int64(1), nil)
	db.On("CountDocuments", mock.Anything, bson.M{"isUrgent": true}).Return(int64(2), nil)

	s := Stats{DB: db}

	req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()
	s.DashboardStatsHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "something went wrong, please try again later")
}

func TestAverageResolutionDaysNegativeAverage(t *testing.T) {
	avgCursor := &mocks.CursorHelper{}
	avgCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		rows := args.Get(0).(*[]avgResolutionRow)
		*rows = []avgResolutionRow{{AvgDays: -1.2}}
	})

	db := mocks.NewComplaintDatabase(t)
	db.On("Aggregate", mock.Anything, mock.Anything).Return(avgCursor, nil)

	s := Stats{DB: db}
	_, err := s.averageResolutionDays(context.Background())
	assert.EqualError(t, err, "invalid resolution data returned")
}

func TestDashboardStatsHandler_CountError(t *testing.T) {
	db := mocks.NewComplaintDatabase(t)
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))

	s := Stats{DB: db}

	req := httptest.NewRequest("GET", "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()
	s.DashboardStatsHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "something went wrong, please try again later")
}
