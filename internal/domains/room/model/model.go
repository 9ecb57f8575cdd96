package model

import (
	"libroom/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldName      = "name"
	FieldLocation  = "location"
	FieldCapacity  = "capacity"
	FieldImage     = "image"
	FieldAmenities = "amenities"
	FieldActive    = "active"
)

type Room struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Location  string         `db:"location"`
	Capacity  int            `db:"capacity"`
	Image     string         `db:"image"`
	Amenities pq.StringArray `db:"amenities"`
	Active    bool           `db:"active"`
	model.Metadata
}
