package user

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves staff account management. Every route is superadmin only.
type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(r chi.Router) {
		r.Post("/", handler.CreateUser)
		r.Get("/", handler.GetUsers)
		r.Get("/{id}", handler.GetUserByID)
		r.Patch("/{id}", handler.UpdateUser)
		r.Delete("/{id}", handler.DeleteUser)
	})
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

// CreateUser
// @Summary Create a staff account
// @Description Superadmin creates a back-office account. Level defaults to staff.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "New account"
// @Success 201 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error "MISSING_FIELD, INVALID_EMAIL or INVALID_INPUT"
// @Failure 409 {object} response.Error "Email already registered"
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to decode create user body")

		return
	}

	user, err := handler.service.Create(r.Context(), req)
	if err != nil {
		fail(w, scope, err, "failed to create user")

		return
	}

	response.WithJSON(w, http.StatusCreated, user)
}

// GetUsers
// @Summary List staff accounts
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Paging and sorting"
// @Param email query string false "Email contains, case insensitive"
// @Param level query string false "superadmin, admin or staff"
// @Param active query boolean false "Only active or inactive accounts"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "GetUsers")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	users, err := handler.service.GetAll(r.Context(), params, listFilter(r))
	if err != nil {
		fail(w, scope, err, "failed to list users")

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

func listFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, operator string, value any) {
		group.Filters = append(group.Filters, gDto.Filter{Field: field, Operator: operator, Value: value, Table: model.TableName})
	}

	if email := query.Get(model.FieldEmail); email != constant.Empty {
		add(model.FieldEmail, gDto.FilterOperatorLike, email)
	}

	if level := query.Get(model.FieldLevel); level != constant.Empty {
		add(model.FieldLevel, gDto.FilterOperatorEq, level)
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		add(model.FieldActive, gDto.FilterOperatorEq, *active)
	}

	return group
}

// GetUserByID
// @Summary Get a staff account
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(r.Context(), chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get user")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser
// @Summary Update a staff account
// @Description Partial update. A superadmin cannot demote or deactivate their own account.
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest
	if err := validator.Decode(r.Body, &req); err != nil {
		fail(w, scope, err, "failed to decode update user body")

		return
	}

	if err := handler.service.Update(r.Context(), req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser
// @Summary Delete a staff account
// @Description A superadmin cannot delete their own account.
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	r, scope := handler.scope(r, "DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(r.Context(), chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
