package database

import "go.mongodb.org/mongo-driver/mongo"

const (
	CollectionUsers        = "users"
	CollectionDonations    = "donations"
	CollectionDonors       = "donors"
	CollectionComments     = "comments"
	CollectionTestimonials = "testimonials"
	CollectionVolunteers   = "volunteers"
)

// Collections groups the handles every repository is built from.
type Collections struct {
	Users        *mongo.Collection
	Donations    *mongo.Collection
	Donors       *mongo.Collection
	Comments     *mongo.Collection
	Testimonials *mongo.Collection
	Volunteers   *mongo.Collection
}

func NewCollections(db *mongo.Database) Collections {
	return Collections{
		Users:        db.Collection(CollectionUsers),
		Donations:    db.Collection(CollectionDonations),
		Donors:       db.Collection(CollectionDonors),
		Comments:     db.Collection(CollectionComments),
		Testimonials: db.Collection(CollectionTestimonials),
		Volunteers:   db.Collection(CollectionVolunteers),
	}
}
