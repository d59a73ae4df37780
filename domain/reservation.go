package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation is a booked stay against an advertisement. The code is a
// random integer in [1, 99999], unique across all reservations, assigned
// once at admission and never reassigned. Reservations are immutable after
// creation apart from the system managed timestamps; no update path exists.
type Reservation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdvertisementID primitive.ObjectID `bson:"advertisement_id" json:"advertisement_id"`
	Code            int                `bson:"code" json:"code"`
	CheckinDate     time.Time          `bson:"checkin_date" json:"checkin_date"`
	CheckoutDate    time.Time          `bson:"checkout_date" json:"checkout_date"`
	TotalCost       float64            `bson:"total_cost" json:"total_cost" validate:"money"`
	Comment         string             `bson:"comment" json:"comment" validate:"required,max=1000"`
	Guests          int                `bson:"guests" json:"guests" validate:"required,min=1"`
	CreationDate    time.Time          `bson:"creation_date" json:"creation_date"`
	UpdateDate      time.Time          `bson:"update_date" json:"update_date"`
}

type Reservations []*Reservation
