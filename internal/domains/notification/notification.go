package notification

import "errors"

// Type is the delivery template the notification collaborator renders.
type Type string

const (
	TypeBookingConfirmation Type = "booking_confirmation"
	TypeBookingStatusUpdate Type = "booking_status_update"
	TypeAdminNotification   Type = "admin_notification"
	TypeContactForm         Type = "contact_form"
	TypeContactFormReply    Type = "contact_form_reply"
)

var ErrUnknownNotification = errors.New("unknown notification")

// Notification is implemented only by the variants in this package.
type Notification interface {
	Recipient() string
	notification()
}

// BookingConfirmation is sent to the guest right after a booking is persisted.
type BookingConfirmation struct {
	To          string `json:"-"`
	BookingID   string `json:"booking_id"`
	GuestName   string `json:"guest_name"`
	RoomName    string `json:"room_name"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Nights      int64  `json:"nights"`
	Rooms       int    `json:"rooms"`
	TotalAmount int64  `json:"total_amount"`
}

// BookingStatusUpdate is sent to the guest after every status transition.
type BookingStatusUpdate struct {
	To               string `json:"-"`
	BookingID        string `json:"booking_id"`
	GuestName        string `json:"guest_name"`
	Status           string `json:"status"`
	RoomName         string `json:"room_name"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	Reason           string `json:"reason,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`
}

// AdminAlert tells the back office a new booking is waiting for review.
type AdminAlert struct {
	To              string `json:"-"`
	BookingID       string `json:"booking_id"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	GuestPhone      string `json:"guest_phone"`
	RoomName        string `json:"room_name"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	TotalAmount     int64  `json:"total_amount"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// ContactForm forwards a public contact message to the back office.
type ContactForm struct {
	To        string `json:"-"`
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// ContactFormReply carries a staff reply back to the sender of a contact message.
type ContactFormReply struct {
	To              string `json:"-"`
	Name            string `json:"name"`
	Subject         string `json:"subject"`
	Reply           string `json:"reply"`
	OriginalMessage string `json:"original_message"`
}

func (n BookingConfirmation) Recipient() string { return n.To }
func (n BookingStatusUpdate) Recipient() string { return n.To }
func (n AdminAlert) Recipient() string          { return n.To }
func (n ContactForm) Recipient() string         { return n.To }
func (n ContactFormReply) Recipient() string    { return n.To }

func (BookingConfirmation) notification() {}
func (BookingStatusUpdate) notification() {}
func (AdminAlert) notification()          {}
func (ContactForm) notification()         {}
func (ContactFormReply) notification()    {}

// Envelope is the wire shape handed to the delivery collaborator.
type Envelope struct {
	Type Type   `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

// NewEnvelope maps each variant to its delivery type.
func NewEnvelope(n Notification) (Envelope, error) {
	var kind Type

	switch n.(type) {
	case BookingConfirmation:
		kind = TypeBookingConfirmation
	case BookingStatusUpdate:
		kind = TypeBookingStatusUpdate
	case AdminAlert:
		kind = TypeAdminNotification
	case ContactForm:
		kind = TypeContactForm
	case ContactFormReply:
		kind = TypeContactFormReply
	default:
		return Envelope{}, ErrUnknownNotification
	}

	return Envelope{Type: kind, To: n.Recipient(), Data: n}, nil
}
