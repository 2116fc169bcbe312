package contact

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryParamTrash = "trash"

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMessage)
		routerGroup.Get("/", handler.GetMessages)
		routerGroup.Get("/{id}", handler.GetMessageByID)
		routerGroup.Patch("/{id}/status", handler.UpdateMessageStatus)
		routerGroup.Post("/{id}/reply", handler.ReplyMessage)
		routerGroup.Delete("/{id}", handler.TrashMessage)
		routerGroup.Post("/{id}/restore", handler.RestoreMessage)
		routerGroup.Delete("/{id}/purge", handler.PurgeMessage)
	})
}

// CreateMessage stores a message from the public contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateMessageRequest true "Create Message Request"
// @Success 201 {object} response.Data[dto.CreateMessageResponse] "Message received"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact [post]
func (handler *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMessage")
	defer scope.End()

	req := dto.CreateMessageRequest{}
	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to create contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMessages lists the inbox, or the trash with ?trash=true.
// @Summary Get contact messages
// @Tags Contact
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param trash query boolean false "List soft-deleted messages"
// @Success 200 {object} response.Data[dto.GetMessagesResponse] "List of messages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.ListMessagesFilter{Status: r.URL.Query().Get(model.FieldStatus)}
	if trash := shared.ConvertStringToBool(r.URL.Query().Get(queryParamTrash)); trash != nil {
		filter.Trash = *trash
	}

	messages, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// GetMessageByID retrieves a single message.
// @Summary Get a contact message by ID
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Data[dto.MessageResponse] "Message details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMessageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	message, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("message_id", id).Msg("failed to get contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, message)
}

// UpdateMessageStatus marks a message unread, read or replied.
// @Summary Update contact message status
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Message status updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMessageStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("message_id", id).Msg("failed to update contact message status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Message status updated")
}

// ReplyMessage emails a reply to the sender and marks the message replied.
// @Summary Reply to a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param request body dto.ReplyRequest true "Reply Request"
// @Success 200 {object} response.Data[dto.ReplyResponse] "Reply sent"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/contact/{id}/reply [post]
// @Security BearerAuth
func (handler *Handler) ReplyMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReplyRequest{}
	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reply(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("message_id", id).Msg("failed to reply to contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// TrashMessage moves a message to the trash.
// @Summary Move a contact message to the trash
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Message "Message moved to trash"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact/{id} [delete]
// @Security BearerAuth
func (handler *Handler) TrashMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TrashMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Trash(ctx, id); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("message_id", id).Msg("failed to trash contact message")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Message moved to trash")
}

// RestoreMessage brings a message back from the trash.
// @Summary Restore a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Message "Message restored"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact/{id}/restore [post]
// @Security BearerAuth
func (handler *Handler) RestoreMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Restore(ctx, id); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("message_id", id).Msg("failed to restore contact message")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Message restored")
}

// PurgeMessage permanently deletes a message that is already in the trash.
// @Summary Permanently delete a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} response.Message "Message deleted permanently"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact/{id}/purge [delete]
// @Security BearerAuth
func (handler *Handler) PurgeMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeMessage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Purge(ctx, id); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("message_id", id).Msg("failed to purge contact message")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Message deleted permanently")
}
