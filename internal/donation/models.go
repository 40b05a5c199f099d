package donation

import "go.mongodb.org/mongo-driver/bson"

// Donation is schemaless: {category, amount, ...} plus whatever else the client sends.
type Donation = bson.M

// CategoryStat is one per-category group of the statistics aggregate.
type CategoryStat struct {
	Category      interface{} `bson:"_id" json:"_id"`
	TotalDonation float64     `bson:"totalDonation" json:"totalDonation"`
	TotalItem     int64       `bson:"totalItem" json:"totalItem"`
}

// Statistics is the summary row. Both fields stay unset when there are no donations.
type Statistics struct {
	TotalDonationSum *float64      `bson:"totalDonationSum" json:"totalDonationSum,omitempty"`
	Statistics       []CategoryStat `bson:"statistics" json:"statistics,omitempty"`
}
