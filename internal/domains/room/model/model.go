package model

import "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCapacity    = "capacity"
	FieldImage       = "image"
	FieldIsAvailable = "is_available"
)

// Room is a bookable room type. Price is the nightly rate in minor currency units.
type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       int64  `db:"price"`
	Capacity    int    `db:"capacity"`
	Image       string `db:"image"`
	IsAvailable bool   `db:"is_available"`
	model.Metadata
}

// Exists reports whether the row was found.
func (r Room) Exists() bool {
	return r.ID != ""
}
