package checkin

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/internal/domains/checkin/service"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.CheckIn
	otel    otel.Otel
}

func New(service service.CheckIn, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/check-in", handler.VerifyCheckIn)
}

// VerifyCheckIn checks a guest in by their verification code.
// @Summary Verify check-in
// @Description Look up a confirmed booking by code and record the check-in for the signed-in operator.
// @Tags CheckIn
// @Accept json
// @Produce json
// @Param request body dto.VerifyCheckInRequest true "Verify Check-In Request"
// @Success 200 {object} response.Data[dto.VerifyCheckInResponse] "Guest checked in"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/check-in [post]
// @Security BearerAuth
func (handler *Handler) VerifyCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyCheckIn")
	defer scope.End()

	req := dto.VerifyCheckInRequest{}
	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	operator := shared.ActorFromContext(ctx)

	res, err := handler.service.Verify(ctx, req, operator)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("operator", operator).Msg("check-in rejected")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Guest checked in by " + operator)

	response.WithJSON(w, http.StatusOK, res)
}
