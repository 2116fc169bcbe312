package dto

import (
	"mime/multipart"
	"time"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name        string                `json:"name"         validate:"required,max=100"`
	Description string                `json:"description"  validate:"omitempty,max=2000"`
	Price       int64                 `json:"price"        validate:"gte=0"`
	Capacity    int                   `json:"capacity"     validate:"required,gt=0"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	IsAvailable *bool                 `json:"is_available" validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user, imageURL string, now time.Time) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Capacity:    c.Capacity,
		Image:       imageURL,
		IsAvailable: available,
		Metadata:    gModel.NewMetadata(now, user),
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"         json:"name"         validate:"omitempty,max=100"`
	Description string                `db:"description"  json:"description"  validate:"omitempty,max=2000"`
	Price       *int64                `db:"price"        json:"price"        validate:"omitempty,gte=0"`
	Capacity    *int                  `db:"capacity"     json:"capacity"     validate:"omitempty,gt=0"`
	Image       *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
	IsAvailable *bool                 `db:"is_available" json:"is_available" validate:"omitempty"`
}

type RoomResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image"`
	IsAvailable bool   `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
