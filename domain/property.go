package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a rentable unit with a fixed number of guest vacancies.
// A property is advertised on one or more platforms, each listing being
// a separate Advertisement referring back to it.
type Property struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code           int                `bson:"code" json:"code" validate:"required,min=1"`
	GuestVacancies int                `bson:"guest_vacancies" json:"guest_vacancies" validate:"required,min=1"`
	Bathrooms      int                `bson:"bathrooms" json:"bathrooms" validate:"required,min=1"`
	PetsAllowed    bool               `bson:"pets_allowed" json:"pets_allowed"`
	CleaningCost   float64            `bson:"cleaning_cost" json:"cleaning_cost" validate:"money"`
	ActivationDate time.Time          `bson:"activation_date" json:"activation_date"`
	CreationDate   time.Time          `bson:"creation_date" json:"creation_date"`
	UpdateDate     time.Time          `bson:"update_date" json:"update_date"`
}

type Properties []*Property
