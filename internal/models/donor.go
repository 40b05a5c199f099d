package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Donor is the per-email running total of contributions.
type Donor struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email  string             `bson:"email" json:"email"`
	Name   string             `bson:"name" json:"name"`
	Image  string             `bson:"image" json:"image"`
	Amount float64            `bson:"amount" json:"amount"`
}

// Comment is denormalized from the commenting user at write time.
type Comment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email          string             `bson:"email" json:"email"`
	CommenterName  string             `bson:"commenterName" json:"commenterName"`
	Comments       string             `bson:"comments" json:"comments"`
	CommenterImage string             `bson:"commenterImage,omitempty" json:"commenterImage,omitempty"`
	Timestamp      string             `bson:"timestamp" json:"timestamp"`
}
