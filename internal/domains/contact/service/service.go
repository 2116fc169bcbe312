package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Contact=MockContactService

import (
	"context"
	"fmt"
	"net/http"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/contact/model"
	"hotel/internal/domains/contact/model/dto"
	"hotel/internal/domains/contact/repository"
	"hotel/internal/domains/notification"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	msgMessageNotFound = "Message not found"
	msgReplyNotSent    = "Reply could not be sent. Please try again."
	replySubjectPrefix = "Re: "
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateMessageRequest) (dto.CreateMessageResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListMessagesFilter) (dto.GetMessagesResponse, error)
	Get(ctx context.Context, id string) (dto.MessageResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
	Reply(ctx context.Context, id string, req dto.ReplyRequest) (dto.ReplyResponse, error)
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo   repository.Contact
	sender notification.Sender
	cfg    *config.Config
	otel   otel.Otel
	clock  timezone.Clock
}

func New(repo repository.Contact, sender notification.Sender, cfg *config.Config, otel otel.Otel, clock timezone.Clock) Contact {
	return &serviceImpl{
		repo:   repo,
		sender: sender,
		cfg:    cfg,
		otel:   otel,
		clock:  clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMessageRequest) (res dto.CreateMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	message := req.ToModel(shared.ActorFromContext(ctx), s.clock())

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to create contact message")

		return res, fmt.Errorf("failed to create contact message: %w", err)
	}

	res.Warnings = notification.Dispatch(ctx, s.sender, notification.ContactForm{
		To:        s.cfg.Notification.AdminEmail,
		MessageID: message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Message:   message.Body,
	})
	res.Success = true
	res.ID = message.ID
	res.Message = dto.MsgSent

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListMessagesFilter) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err //nolint:wrapcheck
	}

	group := filter.ToFilterGroup()

	total, err := s.repo.Count(ctx, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contact messages")

		return res, fmt.Errorf("failed to count contact messages: %w", err)
	}

	messages, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact messages")

		return res, fmt.Errorf("failed to get contact messages: %w", err)
	}

	res.FromModels(messages, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validator.IsID(id) {
		return res, errMessageNotFound()
	}

	message, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(message)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validator.IsID(id) {
		return errMessageNotFound()
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	return s.update(ctx, dto.ByID(id, false), map[string]any{model.FieldStatus: req.Status})
}

// Reply mails the answer to the sender and marks the message replied. The status only changes
// once the reply was handed to the notification driver.
func (s *serviceImpl) Reply(ctx context.Context, id string, req dto.ReplyRequest) (res dto.ReplyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Reply")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validator.IsID(id) {
		return res, errMessageNotFound()
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	message, err := s.find(ctx, dto.ByID(id, false))
	if err != nil {
		return res, err
	}

	err = s.sender.Send(ctx, notification.ContactFormReply{
		To:              message.Email,
		Name:            message.Name,
		Subject:         replySubjectPrefix + message.Subject,
		Reply:           req.Reply,
		OriginalMessage: message.Body,
	})
	if err != nil {
		log.Error().Err(err).Str("message_id", id).Msg("failed to send contact reply")

		return res, failure.New(http.StatusBadGateway, failure.KindServerError, msgReplyNotSent) // nolint:wrapcheck
	}

	now := s.clock()
	if err = s.update(ctx, dto.ByID(id, false), map[string]any{
		model.FieldStatus:    model.StatusReplied,
		model.FieldRepliedAt: now,
	}); err != nil {
		return res, err
	}

	message.Status = model.StatusReplied
	message.RepliedAt = &now
	message.ModifiedAt = now
	message.ModifiedBy = shared.ActorFromContext(ctx)

	res.Message = dto.MsgReplied
	res.Data.FromModel(message)

	return res, nil
}

func (s *serviceImpl) Trash(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Trash")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validator.IsID(id) {
		return errMessageNotFound()
	}

	return s.update(ctx, dto.ByID(id, false), map[string]any{model.FieldDeletedAt: s.clock()})
}

func (s *serviceImpl) Restore(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Restore")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validator.IsID(id) {
		return errMessageNotFound()
	}

	return s.update(ctx, dto.ByID(id, true), map[string]any{model.FieldDeletedAt: nil})
}

// Purge removes a message for good. Only messages already in the trash can be purged.
func (s *serviceImpl) Purge(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Purge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !validator.IsID(id) {
		return errMessageNotFound()
	}

	filter := dto.ByID(id, true)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("message_id", id).Msg("failed to check contact message")

		return fmt.Errorf("failed to check contact message: %w", err)
	}

	if !exist {
		return errMessageNotFound()
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("message_id", id).Msg("failed to purge contact message")

		return fmt.Errorf("failed to purge contact message: %w", err)
	}

	return nil
}

func errMessageNotFound() error {
	return failure.NotFoundKind(failure.KindMessageNotFound, msgMessageNotFound) // nolint:wrapcheck
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Message, error) {
	message, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact message")

		return message, fmt.Errorf("failed to get contact message: %w", err)
	}

	if message.ID == constant.Empty {
		return message, errMessageNotFound()
	}

	return message, nil
}

// update stamps the modifier and reports MESSAGE_NOT_FOUND when nothing matched.
func (s *serviceImpl) update(ctx context.Context, filter gDto.FilterGroup, mod map[string]any) error {
	mod[constant.FieldModifiedAt] = s.clock()
	mod[constant.FieldModifiedBy] = shared.ActorFromContext(ctx)

	affected, err := s.repo.UpdateAffected(ctx, mod, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update contact message")

		return fmt.Errorf("failed to update contact message: %w", err)
	}

	if affected == 0 {
		return errMessageNotFound()
	}

	return nil
}
