package room

import (
	"mime/multipart"
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errInvalidForm = failure.Invalid(failure.KindInvalidInput, "invalid multipart form")

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the catalogue. Reads are public, writes need admin or superadmin.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(r chi.Router) {
		r.Post("/", handler.CreateRoom)
		r.Get("/", handler.GetRooms)
		r.Get("/{id}", handler.GetRoomByID)
		r.Patch("/{id}", handler.UpdateRoom)
		r.Delete("/{id}", handler.DeleteRoom)
	})
}

// roomForm is the multipart body shared by create and update. Absent numbers stay nil.
type roomForm struct {
	name        string
	description string
	price       *int
	capacity    *int
	isAvailable *bool
	image       *multipart.FileHeader
	imageFile   multipart.File
}

func (f roomForm) close() {
	if f.imageFile != nil {
		_ = f.imageFile.Close()
	}
}

func parseRoomForm(r *http.Request) (roomForm, error) {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return roomForm{}, err //nolint:wrapcheck
	}

	form := roomForm{
		name:        r.FormValue(model.FieldName),
		description: r.FormValue(model.FieldDescription),
		price:       formInt(r, model.FieldPrice),
		capacity:    formInt(r, model.FieldCapacity),
		isAvailable: shared.ConvertStringToBool(r.FormValue(model.FieldIsAvailable)),
	}

	if file, header, err := r.FormFile(model.FieldImage); err == nil {
		form.image = header
		form.imageFile = file
	}

	return form, nil
}

func (handler *Handler) scope(r *http.Request, name string) (*http.Request, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)

	return r.WithContext(ctx), scope
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)
	response.WithError(w, err)
}

// CreateRoom
// @Summary Add a room to the catalogue
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param description formData string false "Room description"
// @Param price formData integer true "Nightly rate in minor units"
// @Param capacity formData integer true "Guests per room"
// @Param is_available formData boolean false "Open for booking, defaults to true"
// @Param image formData file false "PNG, JPEG or WEBP, stored in S3"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "CreateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, errInvalidForm)

		return
	}
	defer form.close()

	req := dto.CreateRoomRequest{
		Name:        form.name,
		Description: form.description,
		IsAvailable: form.isAvailable,
		Image:       form.image,
		ImageFile:   form.imageFile,
	}

	if form.price != nil {
		req.Price = int64(*form.price)
	}

	if form.capacity != nil {
		req.Capacity = *form.capacity
	}

	if err := validator.ValidateStruct(&req); err != nil {
		fail(w, scope, err, "invalid create room form")

		return
	}

	room, err := handler.service.Create(r.Context(), req)
	if err != nil {
		fail(w, scope, err, "failed to create room")

		return
	}

	scope.AddEvent("room created by " + shared.ActorFromContext(r.Context()))

	response.WithJSON(w, http.StatusCreated, room)
}

// GetRooms
// @Summary Browse the catalogue
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Paging and sorting"
// @Param name query string false "Name contains, case insensitive"
// @Param is_available query boolean false "Only rooms open or closed for booking"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "GetRooms")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	query := r.URL.Query()

	if name := query.Get(model.FieldName); name != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldName, Operator: gDto.FilterOperatorLike, Value: name, Table: model.TableName})
	}

	if available := shared.ConvertStringToBool(query.Get(model.FieldIsAvailable)); available != nil {
		group.Filters = append(group.Filters, gDto.Filter{Field: model.FieldIsAvailable, Operator: gDto.FilterOperatorEq, Value: *available, Table: model.TableName})
	}

	rooms, err := handler.service.GetAll(r.Context(), params, group)
	if err != nil {
		fail(w, scope, err, "failed to list rooms")

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error "ROOM_NOT_FOUND"
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(r.Context(), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get room")

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom
// @Summary Update a room
// @Description Partial update. A new image replaces the stored one.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param description formData string false "Room description"
// @Param price formData integer false "Nightly rate in minor units"
// @Param capacity formData integer false "Guests per room"
// @Param is_available formData boolean false "Open for booking"
// @Param image formData file false "PNG, JPEG or WEBP"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "ROOM_NOT_FOUND"
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "UpdateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, errInvalidForm)

		return
	}
	defer form.close()

	req := dto.UpdateRoomRequest{
		Name:        form.name,
		Description: form.description,
		Capacity:    form.capacity,
		IsAvailable: form.isAvailable,
		Image:       form.image,
		ImageFile:   form.imageFile,
	}

	if form.price != nil {
		price := int64(*form.price)
		req.Price = &price
	}

	if err := validator.ValidateStruct(&req); err != nil {
		fail(w, scope, err, "invalid update room form")

		return
	}

	if err := handler.service.Update(r.Context(), req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update room")

		return
	}

	scope.AddEvent("room updated by " + shared.ActorFromContext(r.Context()))

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom
// @Summary Remove a room from the catalogue
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error "ROOM_NOT_FOUND"
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(r.Context(), chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete room")

		return
	}

	scope.AddEvent("room deleted by " + shared.ActorFromContext(r.Context()))

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// formInt reads an optional integer form value. Malformed values count as absent.
func formInt(r *http.Request, key string) *int {
	raw := r.FormValue(key)
	if raw == constant.Empty {
		return nil
	}

	value, err := shared.ConvertStringToInt(raw)
	if err != nil {
		log.Warn().Err(err).Str("field", key).Msg("ignoring malformed form value")

		return nil
	}

	return &value
}
