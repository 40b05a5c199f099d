package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. Email is the identity; the password is a bcrypt hash.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
}
