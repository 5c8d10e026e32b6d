package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jansuraksha/jan-suraksha-api/api"
	"github.com/jansuraksha/jan-suraksha-api/config"
	"github.com/jansuraksha/jan-suraksha-api/databases"
	"github.com/jansuraksha/jan-suraksha-api/models"
)

const maxMultipartMemory = 32 << 20

const displayTimeLayout = "2006-01-02 15:04:05"

// Complaint exported for testing purposes
type Complaint struct {
	DB       databases.ComplaintDatabase
	Config   *config.Config
	Notifier *UrgentNotifier
	Evidence EvidenceStore
}

// SubmitComplaintHandler accepts a complaint filing, stores it and redirects
// the citizen to the matching success page. Validation failures answer 400
// with the exact message the filing form shows; storage failures answer 500
// without leaking anything.
func (c Complaint) SubmitComplaintHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		config.ErrorStatus("failed to parse complaint form", http.StatusBadRequest, w, err)
		return
	}

	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	form := complaintForm{
		IsAnonymous:          field("is_anonymous") == "1",
		Name:                 field("name"),
		Mobile:               field("mobile"),
		House:                field("house"),
		City:                 field("city"),
		State:                field("state"),
		Pincode:              field("pincode"),
		CrimeType:            field("crime_type"),
		IncidentDate:         field("incident_date"),
		Location:             field("location"),
		Description:          field("description"),
		IsUrgent:             field("is_urgent") == "1",
		UrgencyJustification: field("urgency_justification"),
	}

	// identified filings carry the authenticated citizen's id from the auth
	// middleware; the form itself is never trusted for identity linkage
	userID, _ := r.Context().Value(api.CitizenIDKey).(string)
	if !form.IsAnonymous && userID == "" {
		config.ErrorStatus("authentication required for identified complaints", http.StatusUnauthorized, w, errors.New("no authenticated user"))
		return
	}

	if msg := validateComplaintForm(form); msg != "" {
		config.ErrorStatus(msg, http.StatusBadRequest, w, errors.New("complaint validation failed"))
		return
	}

	evidenceName := ""
	file, header, err := r.FormFile("evidence")
	if err == nil {
		defer file.Close()
		evidenceName, err = c.Evidence.Save(file, header)
		if err != nil {
			var rejected *evidenceRejectedError
			if errors.As(err, &rejected) {
				config.ErrorStatus(rejected.Error(), http.StatusBadRequest, w, errors.New("evidence rejected"))
				return
			}
			// disk trouble is not the citizen's fault and must stay internal
			config.InternalStatus("failed to store evidence", w, err)
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		config.ErrorStatus("failed to read evidence upload", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now()
	code := newComplaintCode(now)
	if form.IsAnonymous {
		code = newAnonymousTrackingID(now)
	}

	description := form.Description
	if !form.IsAnonymous {
		if addr := foldAddress(form.House, form.City, form.State, form.Pincode); addr != "" {
			description = "Complainant Address: " + addr + "\n\n---\n\n" + form.Description
		}
	}

	complaint := models.Complaint{
		ComplaintCode: code,
		CrimeType:     form.CrimeType,
		IncidentDate:  form.IncidentDate,
		Location:      form.Location,
		Description:   description,
		Evidence:      evidenceName,
		Status:        models.StatusSubmitted,
		IsAnonymous:   form.IsAnonymous,
		IsUrgent:      form.IsUrgent,
		CreatedAt:     primitive.NewDateTimeFromTime(now),
	}
	if !form.IsAnonymous {
		complaint.UserID = userID
		complaint.ComplainantName = form.Name
		complaint.Mobile = form.Mobile
	}
	if form.IsUrgent {
		markedAt := primitive.NewDateTimeFromTime(now)
		complaint.UrgencyJustification = form.UrgencyJustification
		complaint.UrgentMarkedAt = &markedAt
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.InsertOne(ctx, complaint)
	if err != nil {
		config.InternalStatus("failed to insert complaint", w, err)
		return
	}

	insertedID := ""
	if oid, ok := res.Decode().(primitive.ObjectID); ok {
		insertedID = oid.Hex()
	}
	zap.S().Infow("complaint filed",
		"complaintCode", code,
		"isUrgent", form.IsUrgent,
		"isAnonymous", form.IsAnonymous)

	// the complaint is committed at this point, nothing below may fail it
	if form.IsUrgent {
		snapshot := models.ComplaintSnapshot{
			ComplaintID:          insertedID,
			ComplaintCode:        code,
			CrimeType:            form.CrimeType,
			Location:             form.Location,
			DateFiled:            emailDateFiled(now),
			UrgencyJustification: form.UrgencyJustification,
			IsAnonymous:          form.IsAnonymous,
		}
		// the notification attempt happens before the response goes out, so
		// the attempt log always has a line by the time the citizen sees the
		// success page; Notify itself never fails the request
		c.Notifier.Notify(snapshot)
		broadcastUrgentComplaint(map[string]interface{}{
			"complaintCode": code,
			"crimeType":     form.CrimeType,
			"location":      form.Location,
			"filedAt":       now.Format(displayTimeLayout),
			"isAnonymous":   form.IsAnonymous,
		})
	}

	if form.IsAnonymous {
		http.Redirect(w, r, fmt.Sprintf("%s/anonymous-success?tracking_id=%s", c.Config.PublicWebBaseURL, url.QueryEscape(code)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("%s/complaint-success?code=%s", c.Config.PublicWebBaseURL, url.QueryEscape(code)), http.StatusSeeOther)
}

// TrackComplaintHandler serves the public tracking lookup. The response is a
// reduced projection that never includes complainant identity, whatever the
// stored row contains.
func (c Complaint) TrackComplaintHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	code := mux.Vars(r)["code"]

	if !validTrackingCode(code) {
		config.ErrorStatus("invalid tracking code", http.StatusBadRequest, w, errors.New("tracking code does not match any known shape"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var complaint models.Complaint
	err := c.DB.FindOne(ctx, bson.M{"complaintCode": code}).Decode(&complaint)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("complaint not found", http.StatusNotFound, w, err)
			return
		}
		config.InternalStatus("failed to look up complaint", w, err)
		return
	}

	summary := models.ComplaintSummary{
		ComplaintCode: complaint.ComplaintCode,
		CrimeType:     complaint.CrimeType,
		Status:        models.CanonicalStatus(complaint.Status),
		IsUrgent:      complaint.IsUrgent,
		CreatedAt:     complaint.CreatedAt.Time().UTC().Format(displayTimeLayout),
	}
	if complaint.ResolvedAt != nil {
		summary.ResolvedAt = complaint.ResolvedAt.Time().UTC().Format(displayTimeLayout)
	}

	writeJSON(w, http.StatusOK, summary)
}
