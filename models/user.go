package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Citizens own
// zero or more complaints; anonymous filings keep no link back here.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Details UserDetails        `bson:"user" json:"user"`
}

// UserDetails holds the inner user document as stored in the users collection
type UserDetails struct {
	Name      string             `bson:"name" json:"name"`
	Mobile    string             `bson:"mobile" json:"mobile"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"password,omitempty"`
	CreatedAt primitive.DateTime `bson:"createdAt" json:"createdAt"`
}
