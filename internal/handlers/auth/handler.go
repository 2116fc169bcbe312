package auth

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts staff authentication. Login and refresh are public.
func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// reject answers with err and logs it on event.
func reject(w http.ResponseWriter, scope otel.Scope, err error, event *zerolog.Event, msg string) {
	scope.TraceError(err)
	event.Err(err).Msg(msg)
	response.WithError(w, err)
}

func (handler *Handler) begin(r *http.Request, name string) (*http.Request, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)

	return r.WithContext(ctx), scope
}

// Login
// @Summary Staff login
// @Description Exchange back-office credentials for an access and refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error "Wrong email or password"
// @Failure 403 {object} response.Error "Account deactivated"
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		reject(w, scope, err, log.Warn(), "failed to decode login body")

		return
	}

	res, err := handler.service.Login(r.Context(), req)
	if err != nil {
		reject(w, scope, err, log.Warn().Str("email", req.Email), "login rejected")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken
// @Summary Rotate the token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		reject(w, scope, err, log.Warn(), "failed to decode refresh body")

		return
	}

	res, err := handler.service.RefreshToken(r.Context(), req)
	if err != nil {
		reject(w, scope, err, log.Warn(), "refresh rejected")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword
// @Summary Change own password
// @Description The current password must match; the new one must differ and be at least 8 characters.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.begin(r, "ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		reject(w, scope, err, log.Warn(), "failed to decode change password body")

		return
	}

	userID := shared.ActorFromContext(r.Context())

	if err := handler.service.ChangePassword(r.Context(), req, userID); err != nil {
		reject(w, scope, err, log.Warn().Str("user_id", userID), "password change rejected")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
