package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Complaint holds the structure for the complaints collection in mongo.
// A complaint is written exactly once by the filing flow; afterwards only the
// status fields change, via admin transitions. Anonymous complaints carry no
// user linkage, name or mobile at all.
type Complaint struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID                string             `bson:"userId,omitempty" json:"userId,omitempty"`
	ComplaintCode         string             `bson:"complaintCode" json:"complaintCode"`
	ComplainantName       string             `bson:"complainantName,omitempty" json:"complainantName,omitempty"`
	Mobile                string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	CrimeType             string             `bson:"crimeType" json:"crimeType"`
	IncidentDate          string             `bson:"incidentDate,omitempty" json:"incidentDate,omitempty"`
	Location              string             `bson:"location" json:"location"`
	Description           string             `bson:"description" json:"description"`
	Evidence              string             `bson:"evidence,omitempty" json:"evidence,omitempty"`
	Status                string             `bson:"status" json:"status"`
	IsAnonymous           bool               `bson:"isAnonymous" json:"isAnonymous"`
	IsUrgent              bool               `bson:"isUrgent" json:"isUrgent"`
	UrgencyJustification  string             `bson:"urgencyJustification,omitempty" json:"urgencyJustification,omitempty"`
	UrgentMarkedAt        *primitive.DateTime `bson:"urgentMarkedAt,omitempty" json:"urgentMarkedAt,omitempty"`
	CreatedAt             primitive.DateTime `bson:"createdAt" json:"createdAt"`
	ResolvedAt            *primitive.DateTime `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// ComplaintSnapshot is the read-only view handed to the urgent notification
// dispatcher after the complaint row has been committed.
type ComplaintSnapshot struct {
	ComplaintID          string
	ComplaintCode        string
	CrimeType            string
	Location             string
	DateFiled            string
	UrgencyJustification string
	IsAnonymous          bool
}

// ComplaintSummary is the public-safe projection served by the tracking
// lookup. No complainant identity leaves through this type.
type ComplaintSummary struct {
	ComplaintCode string `json:"complaintCode"`
	CrimeType     string `json:"crimeType"`
	Status        string `json:"status"`
	IsUrgent      bool   `json:"isUrgent"`
	CreatedAt     string `json:"createdAt"`
	ResolvedAt    string `json:"resolvedAt,omitempty"`
}
