package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/booking/cart"
	"github.com/sportspot/booking-backend/internal/court"
	"github.com/sportspot/booking-backend/internal/timeslot"
)

type Service interface {
	// Availability returns every sub-court of a court with the full slot
	// grid for the given date, pricing included and taken slots flagged.
	Availability(ctx context.Context, courtID int, date time.Time) (*AvailabilityResult, error)

	Create(ctx context.Context, userID string, req CreateRequest) (*Booking, error)
	CreateMulti(ctx context.Context, userID string, req MultiRequest) ([]*Booking, error)

	GetByID(ctx context.Context, id int, actorID string, actorRole auth.Role) (*Booking, error)
	History(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error)
	OwnerOrders(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error)
	ListAll(ctx context.Context, filter Filter) ([]*Booking, int, error)

	Cancel(ctx context.Context, id int, actorID string, actorRole auth.Role) error

	// RecordDeposit marks a booking deposited on behalf of the court owner,
	// for deposits taken outside the payment gateway.
	RecordDeposit(ctx context.Context, id int, actorID string, actorRole auth.Role) error
	MarkDeposited(ctx context.Context, id int) error
	MarkPaid(ctx context.Context, id int) error

	OwnerStats(ctx context.Context, ownerID string) (*Stats, error)
	AdminStats(ctx context.Context) (*Stats, error)
}

// AvailabilityResult is the snapshot a checkout session is built from.
type AvailabilityResult struct {
	Court     *court.Court
	Date      time.Time
	Holiday   *timeslot.Holiday
	SubCourts []SubCourtAvailability
}

type SubCourtAvailability struct {
	SubCourt *court.SubCourt
	Slots    []SlotAvailability
}

// SlotAvailability is one slot priced for one sub-court on one date. The
// surcharge already includes any holiday surcharge for the date.
type SlotAvailability struct {
	Slot    *timeslot.TimeSlot
	Price   int64
	IsTaken bool
}

type CreateRequest struct {
	SubCourtID    int
	Date          time.Time
	SlotIDs       []int
	PaymentMethod PaymentMethod
}

// MultiRequest is a whole checkout: one date, one payment method, several
// sub-court selections booked all-or-nothing.
type MultiRequest struct {
	Date          time.Time
	PaymentMethod PaymentMethod
	Selections    []Selection
}

type Selection struct {
	SubCourtID int
	SlotIDs    []int
}

type service struct {
	repo            Repository
	courtService    court.Service
	timeslotService timeslot.Service
	loc             *time.Location
	now             func() time.Time
}

// NewService builds the booking service. loc is the facility's time zone:
// the "no bookings in the past" boundary is the calendar date there, not in
// UTC.
func NewService(repo Repository, courtService court.Service, timeslotService timeslot.Service, loc *time.Location) Service {
	return &service{
		repo:            repo,
		courtService:    courtService,
		timeslotService: timeslotService,
		loc:             loc,
		now:             time.Now,
	}
}

func (s *service) Availability(ctx context.Context, courtID int, date time.Time) (*AvailabilityResult, error) {
	crt, err := s.courtService.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	slots, err := s.timeslotService.ListSlots(ctx)
	if err != nil {
		return nil, err
	}
	holiday, err := s.timeslotService.HolidayFor(ctx, date)
	if err != nil {
		return nil, err
	}
	var daySurcharge int64
	if holiday != nil {
		daySurcharge = holiday.Surcharge
	}
	weekSurcharge, err := s.timeslotService.WeekSurchargeFor(ctx, date.Weekday())
	if err != nil {
		return nil, err
	}
	if weekSurcharge != nil {
		daySurcharge += weekSurcharge.Surcharge
	}

	taken, err := s.repo.TakenSlots(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{Court: crt, Date: date, Holiday: holiday}
	for _, sc := range crt.SubCourts {
		if sc.Status != court.SubCourtActive {
			continue
		}
		takenSet := make(map[int]bool, len(taken[sc.ID]))
		for _, slotID := range taken[sc.ID] {
			takenSet[slotID] = true
		}

		avail := SubCourtAvailability{SubCourt: sc}
		for _, slot := range slots {
			// Slots outside the court's opening window are not offered.
			if slot.StartTime < crt.OpenTime || slot.EndTime > crt.CloseTime {
				continue
			}
			avail.Slots = append(avail.Slots, SlotAvailability{
				Slot:    slot,
				Price:   sc.BaseRate + slot.Surcharge + daySurcharge,
				IsTaken: takenSet[slot.ID],
			})
		}
		result.SubCourts = append(result.SubCourts, avail)
	}
	return result, nil
}

func (s *service) Create(ctx context.Context, userID string, req CreateRequest) (*Booking, error) {
	bookings, err := s.CreateMulti(ctx, userID, MultiRequest{
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		Selections: []Selection{
			{SubCourtID: req.SubCourtID, SlotIDs: req.SlotIDs},
		},
	})
	if err != nil {
		return nil, err
	}
	return bookings[0], nil
}

// CreateMulti books every selection of a checkout in one transaction. The
// cart is rebuilt server-side from the authoritative availability snapshot,
// so prices and conflicts are decided here, never trusted from the client.
func (s *service) CreateMulti(ctx context.Context, userID string, req MultiRequest) ([]*Booking, error) {
	if len(req.Selections) == 0 {
		return nil, cart.ErrEmptySelection
	}
	if !ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPayment
	}
	if req.Date.Before(s.today()) {
		return nil, ErrPastDate
	}

	// A slot can appear only once across the whole checkout, whether the
	// sub-court is repeated between selections or a slot id within one.
	requested := make(map[ConflictedSlot]bool)
	for _, sel := range req.Selections {
		for _, slotID := range sel.SlotIDs {
			key := ConflictedSlot{SubCourtID: sel.SubCourtID, SlotID: slotID}
			if requested[key] {
				return nil, ErrDuplicateSlot.WithDetails([]ConflictedSlot{key})
			}
			requested[key] = true
		}
	}

	bookings := make([]*Booking, 0, len(req.Selections))
	for _, sel := range req.Selections {
		if len(sel.SlotIDs) == 0 {
			return nil, ErrNoSlots
		}
		b, err := s.priceSelection(ctx, userID, req.Date, req.PaymentMethod, sel)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := s.repo.CreateAll(ctx, bookings); err != nil {
		return nil, err
	}

	zap.L().Info("bookings created",
		zap.String("user_id", userID),
		zap.Time("date", req.Date),
		zap.Int("bookings", len(bookings)),
	)
	return bookings, nil
}

// today returns the facility's current calendar date as a midnight-UTC
// value, matching how booking dates are stored.
func (s *service) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// priceSelection turns one sub-court selection into an unsaved Booking with
// authoritative prices, replaying the selection through a cart built from
// the current availability of the sub-court's court.
func (s *service) priceSelection(ctx context.Context, userID string, date time.Time, method PaymentMethod, sel Selection) (*Booking, error) {
	subCourt, err := s.courtService.GetSubCourtByID(ctx, sel.SubCourtID)
	if err != nil {
		return nil, ErrSubCourtGone.WithDetails(map[string]int{"sub_court_id": sel.SubCourtID})
	}
	if subCourt.Status != court.SubCourtActive {
		return nil, ErrClosedSubCourt
	}

	avail, err := s.Availability(ctx, subCourt.CourtID, date)
	if err != nil {
		return nil, err
	}

	var slots []SlotAvailability
	for _, sc := range avail.SubCourts {
		if sc.SubCourt.ID == sel.SubCourtID {
			slots = sc.Slots
			break
		}
	}
	byID := make(map[int]SlotAvailability, len(slots))
	for _, sa := range slots {
		byID[sa.Slot.ID] = sa
	}

	// Absent from the offered grid means either outside the court's hours
	// or not a slot at all; tell the two apart.
	allSlots, err := s.timeslotService.ListSlots(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int]bool, len(allSlots))
	for _, slot := range allSlots {
		known[slot.ID] = true
	}

	c := cart.New()
	c.ToggleSubCourt(cart.SubCourt{ID: subCourt.ID, Name: subCourt.Name, BaseRate: subCourt.BaseRate})
	for _, slotID := range sel.SlotIDs {
		sa, ok := byID[slotID]
		if !ok {
			if !known[slotID] {
				return nil, ErrSlotUnknown.WithDetails(map[string]int{"slot_id": slotID})
			}
			return nil, ErrOutsideHours.WithDetails(map[string]int{"slot_id": slotID})
		}
		if sa.IsTaken {
			return nil, ErrConflict.WithDetails([]ConflictedSlot{{SubCourtID: subCourt.ID, SlotID: slotID}})
		}
		c.ToggleSlot(subCourt.ID, cart.Slot{
			ID:        sa.Slot.ID,
			StartTime: sa.Slot.StartTime,
			EndTime:   sa.Slot.EndTime,
			Surcharge: sa.Price - subCourt.BaseRate,
			IsTaken:   sa.IsTaken,
		})
	}
	if !c.IsValid() {
		return nil, ErrNoSlots
	}

	booking := &Booking{
		UserID:        userID,
		SubCourtID:    subCourt.ID,
		SubCourtName:  subCourt.Name,
		CourtID:       avail.Court.ID,
		CourtName:     avail.Court.Name,
		Date:          date,
		Status:        StatusPending,
		PaymentMethod: method,
		TotalPrice:    c.TotalPrice(),
	}
	for _, picked := range c.SelectedSlots(subCourt.ID) {
		booking.Details = append(booking.Details, BookingDetail{
			SlotID:    picked.SlotID,
			StartTime: picked.StartTime,
			EndTime:   picked.EndTime,
			Price:     picked.Price,
		})
	}
	return booking, nil
}

func (s *service) GetByID(ctx context.Context, id int, actorID string, actorRole auth.Role) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canAccess(ctx, b, actorID, actorRole); err != nil {
		return nil, err
	}
	return b, nil
}

// canAccess allows the booking's customer, the court's owner and admins.
func (s *service) canAccess(ctx context.Context, b *Booking, actorID string, actorRole auth.Role) error {
	if actorRole == auth.RoleAdmin || b.UserID == actorID {
		return nil
	}
	if actorRole == auth.RoleOwner {
		isOwner, err := s.courtService.IsOwner(ctx, b.SubCourtID, actorID)
		if err != nil {
			return err
		}
		if isOwner {
			return nil
		}
	}
	return ErrForbidden
}

func (s *service) History(ctx context.Context, userID string, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.List(ctx, Filter{UserID: userID, Page: page, PageSize: pageSize})
}

func (s *service) OwnerOrders(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error) {
	filter.OwnerID = ownerID
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id int, actorID string, actorRole auth.Role) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.canAccess(ctx, b, actorID, actorRole); err != nil {
		return err
	}
	if b.Status == StatusCancelled || b.Status == StatusPaid {
		return ErrNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}
	zap.L().Info("booking cancelled", zap.Int("booking_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *service) RecordDeposit(ctx context.Context, id int, actorID string, actorRole auth.Role) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Only the court's owner or an admin can record an off-gateway deposit.
	if actorRole != auth.RoleAdmin {
		isOwner, err := s.courtService.IsOwner(ctx, b.SubCourtID, actorID)
		if err != nil {
			return err
		}
		if !isOwner {
			return ErrForbidden
		}
	}
	if b.Status != StatusPending {
		return ErrNotDepositable
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusDeposited); err != nil {
		return err
	}
	zap.L().Info("deposit recorded", zap.Int("booking_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *service) MarkDeposited(ctx context.Context, id int) error {
	return s.transition(ctx, id, StatusDeposited)
}

func (s *service) MarkPaid(ctx context.Context, id int) error {
	return s.transition(ctx, id, StatusPaid)
}

func (s *service) OwnerStats(ctx context.Context, ownerID string) (*Stats, error) {
	return s.repo.Stats(ctx, ownerID)
}

func (s *service) AdminStats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx, "")
}

func (s *service) transition(ctx context.Context, id int, status Status) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusCancelled {
		return fmt.Errorf("booking %d is cancelled: %w", id, ErrNotCancellable)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
