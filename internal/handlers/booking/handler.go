package booking

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the booking endpoints. Guests may only create; the rest is back office.
func (handler *Handler) Router(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", handler.CreateBooking)
		r.Get("/", handler.GetBookings)
		r.Get("/{id}", handler.GetBookingByID)
		r.Patch("/{id}/status", handler.UpdateBookingStatus)
	})
}

func (handler *Handler) begin(r *http.Request, name string) (*http.Request, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".booking."+name)

	return r.WithContext(ctx), scope
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, event *zerolog.Event, msg string) {
	scope.TraceError(err)
	event.Err(err).Msg(msg)
	response.WithError(w, err)
}

func listFilter(r *http.Request) dto.ListBookingsFilter {
	query := r.URL.Query()

	return dto.ListBookingsFilter{
		Status: query.Get(model.FieldStatus),
		RoomID: query.Get(model.FieldRoomID),
		Email:  query.Get(model.FieldEmail),
	}
}

// CreateBooking
// @Summary Place a booking
// @Description The stay is validated again and the room re-checked before a pending booking is stored.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Guest and stay details"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "Room not found"
// @Failure 409 {object} response.Error "Room unavailable for the dates"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "Create")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		fail(w, scope, err, log.Warn(), "failed to decode booking body")

		return
	}

	res, err := handler.service.Create(r.Context(), req)
	if err != nil {
		fail(w, scope, err, log.Warn().Str("room_id", req.RoomID), "booking rejected")

		return
	}

	scope.SetAttribute("booking.id", res.Booking.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param room_id query string false "Room"
// @Param email query string false "Guest email"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "GetAll")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	res, err := handler.service.GetAll(r.Context(), params, listFilter(r))
	if err != nil {
		fail(w, scope, err, log.Error(), "failed to list bookings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID
// @Summary Booking detail with its room
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "Get")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(r.Context(), id)
	if err != nil {
		fail(w, scope, err, log.Warn().Str("booking_id", id), "failed to get booking")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateBookingStatus
// @Summary Move a booking through its lifecycle
// @Description pending to confirmed issues a verification code. Cancelling frees the dates.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Target status and optional reason"
// @Success 200 {object} response.Data[dto.UpdateStatusResponse]
// @Failure 400 {object} response.Error "Invalid status or transition"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "UpdateStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateStatusRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		fail(w, scope, err, log.Warn(), "failed to decode status body")

		return
	}

	res, err := handler.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		fail(w, scope, err, log.Warn().Str("booking_id", id).Str("status", req.Status), "status change rejected")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
