package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/contact/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	MsgSent    = "Thank you for your message. We will get back to you soon."
	MsgReplied = "Reply sent successfully"
)

type CreateMessageRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"omitempty,max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (c *CreateMessageRequest) ToModel(user string, now time.Time) model.Message {
	return model.Message{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Phone:    strings.TrimSpace(c.Phone),
		Subject:  strings.TrimSpace(c.Subject),
		Body:     c.Message,
		Status:   model.StatusUnread,
		Metadata: gModel.NewMetadata(now, user),
	}
}

type CreateMessageResponse struct {
	Success  bool     `json:"success"`
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read replied"`
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required,max=5000"`
}

type ReplyResponse struct {
	Message string          `json:"message"`
	Data    MessageResponse `json:"data"`
}

type MessageResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	Status    string  `json:"status"`
	RepliedAt *string `json:"replied_at"`
	DeletedAt *string `json:"deleted_at"`
	gDto.Metadata
}

func (m *MessageResponse) FromModel(mod model.Message) {
	m.ID = mod.ID
	m.Name = mod.Name
	m.Email = mod.Email
	m.Phone = mod.Phone
	m.Subject = mod.Subject
	m.Message = mod.Body
	m.Status = string(mod.Status)
	m.RepliedAt = formatOptional(mod.RepliedAt)
	m.DeletedAt = formatOptional(mod.DeletedAt)
	m.Metadata.FromModel(mod.Metadata)
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (g *GetMessagesResponse) FromModels(models []model.Message, totalData, limit int) {
	g.TotalData = totalData
	g.TotalPage = shared.CalculateTotalPage(totalData, limit)

	g.Messages = make([]MessageResponse, len(models))
	for i, mod := range models {
		g.Messages[i].FromModel(mod)
	}
}

// ListMessagesFilter selects the inbox, or the trash when Trash is set.
type ListMessagesFilter struct {
	Status string `validate:"omitempty,oneof=unread read replied"`
	Trash  bool
}

func (l *ListMessagesFilter) ToFilterGroup() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  append(ScopeFilters(l.Trash), l.statusFilters()...),
	}
}

func (l *ListMessagesFilter) statusFilters() []any {
	if l.Status == constant.Empty {
		return nil
	}

	return []any{gDto.Filter{Field: model.FieldStatus, Value: l.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName}}
}

// ScopeFilters restricts a query to the inbox or to the trash.
func ScopeFilters(trash bool) []any {
	operator := gDto.FilterIsNull
	if trash {
		operator = gDto.FilterIsNotNull
	}

	return []any{gDto.Filter{Field: model.FieldDeletedAt, Operator: operator, Table: model.TableName}}
}

// ByID matches one message inside the inbox or the trash.
func ByID(id string, trash bool) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append([]any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		}, ScopeFilters(trash)...),
	}
}
