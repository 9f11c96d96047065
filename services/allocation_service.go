package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-allocation/events"
	"hotel-allocation/models"
	"hotel-allocation/utils"
)

// AllocationService is the only writer of Booking and Room rows. Every
// mutating operation runs the conflict check, the state transition, the
// interval update and the room-status sync inside one transaction: either all
// of it commits or none of it does. Lifecycle events are handed to the
// publisher only after that outcome is known.
type AllocationService struct {
	DB        *gorm.DB
	Checker   ConflictChecker
	Sync      RoomStatusSynchronizer
	Publisher events.Publisher

	// TxTimeout bounds every transaction; on expiry the store aborts with no
	// partial effect and the caller gets ErrTimeout.
	TxTimeout time.Duration

	// AllowPastCheckIn relaxes the non-past check_in validation (policy knob,
	// off by default).
	AllowPastCheckIn bool

	// Now supplies the calendar date; overridable in tests.
	Now func() time.Time
}

func NewAllocationService(db *gorm.DB, pub events.Publisher) *AllocationService {
	return &AllocationService{
		DB:        db,
		Publisher: pub,
		TxTimeout: 5 * time.Second,
		Now:       utils.Today,
	}
}

// CreateBookingInput carries an already-authorized booking intent.
type CreateBookingInput struct {
	RoomID         uint
	GuestID        uint
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	TotalPrice     float64
	Details        datatypes.JSON
}

// CreateBooking validates the interval, then atomically checks conflicts and
// inserts the booking as Confirmed.
func (s *AllocationService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.RoomID == 0 {
		return nil, &ValidationError{Field: "room_id", Reason: "is required"}
	}
	if in.GuestID == 0 {
		return nil, &ValidationError{Field: "guest_id", Reason: "is required"}
	}
	checkIn := utils.DateOnly(in.CheckIn)
	checkOut := utils.DateOnly(in.CheckOut)
	if err := s.validateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}
	if !s.AllowPastCheckIn && checkIn.Before(s.Now()) {
		return nil, &ValidationError{Field: "check_in", Reason: "is in the past"}
	}
	if in.NumberOfGuests <= 0 {
		in.NumberOfGuests = 1
	}

	booking := models.Booking{
		RoomID:         in.RoomID,
		GuestID:        in.GuestID,
		ReferenceCode:  uuid.NewString(),
		Status:         models.BookingConfirmed,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: in.NumberOfGuests,
		TotalPrice:     in.TotalPrice,
		Details:        in.Details,
	}

	var evs []events.Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if _, err := s.lockRoom(tx, in.RoomID); err != nil {
			return err
		}
		if err := s.Checker.Check(tx, in.RoomID, checkIn, checkOut, 0); err != nil {
			return err
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if _, err := s.Sync.Sync(tx, in.RoomID, s.Now()); err != nil {
			return err
		}
		evs = append(evs, events.BookingCreated(booking.ID, booking.RoomID))
		return nil
	})
	if err != nil {
		var ce *ConflictError
		if errors.As(err, &ce) {
			s.publish(ctx, events.BookingConflictRejected(0, in.RoomID))
		}
		return nil, err
	}
	s.publish(ctx, evs...)
	return &booking, nil
}

// ModifyDates moves a booking to a new interval. Legal only while the booking
// is Confirmed or Active; the conflict check excludes the booking itself so
// shrinking or shifting within its own prior dates always succeeds.
func (s *AllocationService) ModifyDates(ctx context.Context, bookingID uint, checkIn, checkOut time.Time) (*models.Booking, error) {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)
	if err := s.validateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}

	var booking models.Booking
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := s.lockBooking(tx, bookingID, &booking); err != nil {
			return err
		}
		if booking.Status != models.BookingConfirmed && booking.Status != models.BookingActive {
			return &InvalidTransitionError{From: string(booking.Status), Op: "date modification"}
		}
		if _, err := s.lockRoom(tx, booking.RoomID); err != nil {
			return err
		}
		if err := s.Checker.Check(tx, booking.RoomID, checkIn, checkOut, booking.ID); err != nil {
			return err
		}
		if err := s.Checker.Index.UpdateInterval(tx, booking.ID, checkIn, checkOut); err != nil {
			return err
		}
		booking.CheckIn = checkIn
		booking.CheckOut = checkOut
		if _, err := s.Sync.Sync(tx, booking.RoomID, s.Now()); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		var ce *ConflictError
		if errors.As(err, &ce) {
			s.publish(ctx, events.BookingConflictRejected(bookingID, ce.RoomID))
		}
		return nil, err
	}
	return &booking, nil
}

// TransitionBooking drives the state machine, resyncs the room and emits the
// transition event for housekeeping/notification subscribers.
func (s *AllocationService) TransitionBooking(ctx context.Context, bookingID uint, target models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	var evs []events.Event
	err := s.transact(ctx, func(tx *gorm.DB) error {
		if err := s.lockBooking(tx, bookingID, &booking); err != nil {
			return err
		}
		from := booking.Status
		next, err := Transition(from, target)
		if err != nil {
			return err
		}
		// Same per-room lock as create/modify, taken booking->room: the status
		// derivation below must not interleave with another transition's on a
		// stale snapshot of the booking set.
		if _, err := s.lockRoom(tx, booking.RoomID); err != nil {
			return err
		}
		if err := s.Checker.Index.UpdateStatus(tx, booking.ID, next); err != nil {
			return err
		}
		booking.Status = next
		if _, err := s.Sync.Sync(tx, booking.RoomID, s.Now()); err != nil {
			return err
		}
		evs = append(evs, events.BookingTransitioned(booking.ID, booking.RoomID, from, next))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, evs...)
	return &booking, nil
}

// CancelBooking is sugar over TransitionBooking(id, Cancelled).
func (s *AllocationService) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return s.TransitionBooking(ctx, bookingID, models.BookingCancelled)
}

// CheckAvailability is read-only. With roomID set it answers for that room
// (empty result means booked); with roomID zero it scans every non-retired
// room that is not under maintenance and returns the free ones ordered by id.
func (s *AllocationService) CheckAvailability(ctx context.Context, roomID uint, checkIn, checkOut time.Time) ([]uint, error) {
	checkIn = utils.DateOnly(checkIn)
	checkOut = utils.DateOnly(checkOut)
	if err := s.validateInterval(checkIn, checkOut); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	if roomID != 0 {
		var room models.Room
		if err := db.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, wrapStoreErr(err)
		}
		entries, err := s.Checker.Index.Overlapping(db, roomID, checkIn, checkOut, 0)
		if err != nil {
			return nil, wrapStoreErr(err)
		}
		if len(entries) > 0 {
			return []uint{}, nil
		}
		return []uint{roomID}, nil
	}

	occupied := db.Model(&models.Booking{}).
		Select("room_id").
		Where("status IN ?", models.ConflictStatuses).
		Where("check_in < ? AND ? < check_out", checkOut, checkIn)

	var ids []uint
	err := db.Model(&models.Room{}).
		Where("status <> ?", models.RoomMaintenance).
		Where("id NOT IN (?)", occupied).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// GetBooking loads a booking with its room.
func (s *AllocationService) GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return &booking, nil
}

// ListBookings returns all bookings newest first.
func (s *AllocationService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.WithContext(ctx).Preload("Room").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return list, nil
}

func (s *AllocationService) validateInterval(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return &ValidationError{Field: "interval", Reason: "check_in and check_out are required"}
	}
	if !checkIn.Before(checkOut) {
		return &ValidationError{Field: "interval", Reason: "check_in must be before check_out"}
	}
	return nil
}

// transact runs fn inside one bounded transaction and maps store failures
// onto the engine taxonomy.
func (s *AllocationService) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.TxTimeout)
		defer cancel()
	}
	return wrapStoreErr(s.DB.WithContext(ctx).Transaction(fn))
}

// lockRoom takes the per-room serialization lock before the conflict check.
// Two concurrent allocations for the same room queue here; different rooms
// never block each other. Locking only candidate booking rows would not close
// the insert/insert race when the room has no bookings yet.
func (s *AllocationService) lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	q := tx
	// sqlite has no FOR UPDATE; the test store serializes on its single
	// connection instead.
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *AllocationService) lockBooking(tx *gorm.DB, bookingID uint, out *models.Booking) error {
	q := tx
	if tx.Dialector.Name() != "sqlite" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(out, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// publish delivers events after the transaction outcome is known. Failures
// are logged, never propagated: the committed state is the truth and
// subscribers reconcile from it.
func (s *AllocationService) publish(ctx context.Context, evs ...events.Event) {
	if s.Publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, e := range evs {
		if err := s.Publisher.Publish(ctx, e); err != nil {
			log.Printf("warning: failed to publish %s for booking %d: %v", e.Type, e.BookingID, err)
		}
	}
}
