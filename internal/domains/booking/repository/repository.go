package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	constraintNoOverlap       = "bookings_no_overlap"
	constraintVerificationKey = "bookings_verification_code_key"

	argStayCheckIn    = "stay_check_in"
	argStayCheckOut   = "stay_check_out"
	argCurrentStatus  = "current_status"
	argRequiredStatus = "required_status"
	argConflictStatus = "conflict_status"
)

var (
	// ErrRoomUnavailable is returned when the exclusion constraint rejects an overlapping stay.
	ErrRoomUnavailable = errors.New("room already booked for the requested dates")
	// ErrVerificationCodeTaken is returned when a generated code collides with an existing one.
	ErrVerificationCodeTaken = errors.New("verification code already assigned to another booking")
)

type Booking interface {
	Create(ctx context.Context, booking model.Booking) error
	HasConflict(ctx context.Context, roomID string, stay model.Stay) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	FindByCode(ctx context.Context, code string) (model.BookingDetail, error)
	Transition(ctx context.Context, id string, from model.Status, mod map[string]any) (bool, error)
	CheckIn(ctx context.Context, id, operator string, at time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BookingDetail]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ConflictFilter matches bookings of the room whose stay intersects the given one
// and whose status still holds the room.
func ConflictFilter(roomID string, stay model.Stay) gDto.FilterGroup {
	statuses := make([]string, 0, len(model.ConflictStatuses))
	for _, status := range model.ConflictStatuses {
		statuses = append(statuses, status.String())
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argStayCheckOut, Field: model.FieldCheckIn, Value: stay.CheckOut, Operator: gDto.FilterOperatorLess, Table: model.TableName},
			gDto.Filter{ArgName: argStayCheckIn, Field: model.FieldCheckOut, Value: stay.CheckIn, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
			gDto.Filter{ArgName: argConflictStatus, Field: model.FieldStatus, Value: statuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}
}

// NormalizeCode trims and upper-cases a guest supplied verification code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("booking_id", booking.ID).Msg("failed to rollback booking insert")
		}
	}()

	if err = r.InsertTx(ctx, tx, model.BookingDetail{Booking: booking}); err != nil {
		return mapConstraintError(err)
	}

	if err = tx.Commit(); err != nil {
		return mapConstraintError(fmt.Errorf("failed to commit booking: %w", err))
	}

	return nil
}

func (r *repositoryImpl) HasConflict(ctx context.Context, roomID string, stay model.Stay) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasConflict")
	defer scope.End()

	return r.Exist(ctx, ConflictFilter(roomID, stay)) //nolint:wrapcheck
}

func (r *repositoryImpl) FindByCode(ctx context.Context, code string) (model.BookingDetail, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindByCode")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldVerificationCode,
				Value:    NormalizeCode(code),
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return r.Get(ctx, filter) //nolint:wrapcheck
}

// Transition writes mod only while the booking still has status from.
// It reports false when another writer moved the booking first.
func (r *repositoryImpl) Transition(ctx context.Context, id string, from model.Status, mod map[string]any) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Transition")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argCurrentStatus, Field: model.FieldStatus, Value: from, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	affected, err := r.UpdateAffected(ctx, mod, filter)
	if err != nil {
		scope.TraceError(err)

		return false, mapConstraintError(err)
	}

	return affected == 1, nil
}

// CheckIn stamps the booking only while it is confirmed and not yet checked in.
func (r *repositoryImpl) CheckIn(ctx context.Context, id, operator string, at time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CheckIn")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argRequiredStatus, Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckedInAt, Operator: gDto.FilterIsNull, Table: model.TableName},
		},
	}

	mod := map[string]any{
		model.FieldCheckedInAt:   at,
		model.FieldCheckedInBy:   operator,
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: operator,
	}

	affected, err := r.UpdateAffected(ctx, mod, filter)
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return affected == 1, nil
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch {
	case string(pqErr.Code) == constant.PqErrorCodeExclusion && pqErr.Constraint == constraintNoOverlap:
		return fmt.Errorf("%w: %w", ErrRoomUnavailable, err)
	case string(pqErr.Code) == constant.PqErrorCodeUniqueViolation && pqErr.Constraint == constraintVerificationKey:
		return fmt.Errorf("%w: %w", ErrVerificationCodeTaken, err)
	default:
		return err
	}
}
