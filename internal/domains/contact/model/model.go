package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "contact_messages"
	EntityName = "contact"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldSubject   = "subject"
	FieldStatus    = "status"
	FieldRepliedAt = "replied_at"
	FieldDeletedAt = "deleted_at"
)

type Status string

const (
	StatusUnread  Status = "unread"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
)

// Message is a guest enquiry. A non-nil DeletedAt puts it in the trash.
type Message struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Phone     string     `db:"phone"`
	Subject   string     `db:"subject"`
	Body      string     `db:"message"`
	Status    Status     `db:"status"`
	RepliedAt *time.Time `db:"replied_at"`
	DeletedAt *time.Time `db:"deleted_at"`
	model.Metadata
}

func (m Message) InTrash() bool {
	return m.DeletedAt != nil
}
