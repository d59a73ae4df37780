package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Advertisement is a listing of a property on a hosting platform. It holds a
// non owning reference to its property; a property may carry any number of
// advertisements. Advertisements are never deletable through the exposed API,
// deleting a property is the only path that removes them.
type Advertisement struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID   primitive.ObjectID `bson:"property_id" json:"property_id"`
	Platform     string             `bson:"platform" json:"platform" validate:"required,max=50"`
	PlatformTax  float64            `bson:"platform_tax" json:"platform_tax" validate:"money"`
	CreationDate time.Time          `bson:"creation_date" json:"creation_date"`
	UpdateDate   time.Time          `bson:"update_date" json:"update_date"`
}

type Advertisements []*Advertisement
