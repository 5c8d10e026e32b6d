package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jansuraksha/jan-suraksha-api/api"
	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

// Stats exported for testing purposes
type Stats struct {
	DB databases.ComplaintDatabase
}

type statusCountRow struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

type avgResolutionRow struct {
	AvgDays float64 `bson:"avgDays"`
}

// DashboardStatsHandler aggregates the numbers behind the admin dashboard.
// Every row counts toward exactly one status bucket, whatever junk the status
// column carries.
func (s Stats) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	startOfWeekWindow := time.Date(weekAgo.Year(), weekAgo.Month(), weekAgo.Day(), 0, 0, 0, 0, now.Location())

	total, err := s.DB.CountDocuments(ctx, bson.M{})
	if err != nil {
		config.InternalStatus("failed to count complaints", w, err)
		return
	}

	thisMonth, err := s.DB.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": primitive.NewDateTimeFromTime(startOfMonth)},
	})
	if err != nil {
		config.InternalStatus("failed to count complaints this month", w, err)
		return
	}

	thisWeek, err := s.DB.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": primitive.NewDateTimeFromTime(startOfWeekWindow)},
	})
	if err != nil {
		config.InternalStatus("failed to count complaints this week", w, err)
		return
	}

	if total < 0 || thisMonth < 0 || thisWeek < 0 {
		config.InternalStatus("failed to fetch statistics", w, errors.New("invalid statistics data returned"))
		return
	}

	urgent, err := s.DB.CountDocuments(ctx, bson.M{"isUrgent": true})
	if err != nil {
		config.InternalStatus("failed to count urgent complaints", w, err)
		return
	}
	normal := total - urgent
	if normal < 0 {
		// an urgent row slipped in between the two counts
		config.InternalStatus("failed to fetch statistics", w, errors.New("invalid statistics data returned"))
		return
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(urgent) / float64(total) * 100
	}

	breakdown, err := s.statusBreakdown(ctx)
	if err != nil {
		config.InternalStatus("failed to aggregate status breakdown", w, err)
		return
	}

	avgDays, err := s.averageResolutionDays(ctx)
	if err != nil {
		config.InternalStatus("failed to compute resolution time", w, err)
		return
	}

	resp := models.StatsResponse{
		Status: "success",
		Data: models.DashboardStats{
			TotalComplaints:   total,
			ThisMonth:         thisMonth,
			ThisWeek:          thisWeek,
			ByStatus:          breakdown,
			UrgentRatio:       fmt.Sprintf("%.1f%%", ratio),
			UrgentCount:       urgent,
			NormalCount:       normal,
			AvgResolutionDays: avgDays,
		},
		GeneratedAt: now.Format(displayTimeLayout),
		ServerTime:  now.Unix(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusBreakdown groups rows by their stored status string and folds each
// group into a canonical bucket.
func (s Stats) statusBreakdown(ctx context.Context) (models.StatusBreakdown, error) {
	var breakdown models.StatusBreakdown

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := s.DB.Aggregate(ctx, pipeline)
	if err != nil {
		return breakdown, err
	}

	var rows []statusCountRow
	if err := cursor.Decode(&rows); err != nil {
		return breakdown, err
	}

	for _, row := range rows {
		switch models.CanonicalStatus(row.Status) {
		case models.StatusSubmitted:
			breakdown.Submitted += row.Count
		case models.StatusInProgress:
			breakdown.InProgress += row.Count
		case models.StatusResolved:
			breakdown.Resolved += row.Count
		case models.StatusClosed:
			breakdown.Closed += row.Count
		}
	}
	return breakdown, nil
}

// averageResolutionDays averages resolvedAt minus createdAt over all rows
// that carry a resolution timestamp, rounded to one decimal.
func (s Stats) averageResolutionDays(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"resolvedAt": bson.M{"$ne": nil}}},
		{"$project": bson.M{
			"days": bson.M{"$divide": []interface{}{
				bson.M{"$subtract": []interface{}{"$resolvedAt", "$createdAt"}},
				int64(24 * 60 * 60 * 1000),
			}},
		}},
		{"$group": bson.M{"_id": nil, "avgDays": bson.M{"$avg": "$days"}}},
	}
	cursor, err := s.DB.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var rows []avgResolutionRow
	if err := cursor.Decode(&rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if rows[0].AvgDays < 0 {
		// resolvedAt earlier than createdAt means corrupt rows
		return 0, errors.New("invalid resolution data returned")
	}
	return math.Round(rows[0].AvgDays*10) / 10, nil
}
