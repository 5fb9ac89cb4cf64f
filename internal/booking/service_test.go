package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/court"
	"github.com/sportspot/booking-backend/internal/timeslot"
)

type fakeRepo struct {
	bookings []*Booking
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) CreateAll(_ context.Context, batch []*Booking) error {
	taken := make(map[ConflictedSlot]bool)
	for _, b := range r.bookings {
		if b.Status == StatusCancelled {
			continue
		}
		for _, d := range b.Details {
			taken[ConflictedSlot{SubCourtID: b.SubCourtID, SlotID: d.SlotID}] = true
		}
	}

	var conflicts []ConflictedSlot
	for _, b := range batch {
		for _, d := range b.Details {
			key := ConflictedSlot{SubCourtID: b.SubCourtID, SlotID: d.SlotID}
			if taken[key] {
				conflicts = append(conflicts, key)
			}
			taken[key] = true
		}
	}
	if len(conflicts) > 0 {
		return ErrConflict.WithDetails(conflicts)
	}

	for _, b := range batch {
		b.ID = r.nextID
		r.nextID++
		b.CreatedAt = time.Now()
		r.bookings = append(r.bookings, b)
	}
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int, status Status) error {
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) Stats(_ context.Context, _ string) (*Stats, error) {
	var s Stats
	for _, b := range r.bookings {
		s.Total++
		switch b.Status {
		case StatusPending:
			s.Pending++
		case StatusDeposited:
			s.Deposited++
		case StatusPaid:
			s.Paid++
			s.Revenue += b.TotalPrice
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return &s, nil
}

func (r *fakeRepo) TakenSlots(_ context.Context, courtID int, date time.Time) (map[int][]int, error) {
	taken := make(map[int][]int)
	for _, b := range r.bookings {
		if b.Status == StatusCancelled || !b.Date.Equal(date) || b.CourtID != courtID {
			continue
		}
		for _, d := range b.Details {
			taken[b.SubCourtID] = append(taken[b.SubCourtID], d.SlotID)
		}
	}
	return taken, nil
}

// fakeCourtService overrides only the methods the booking service calls;
// anything else panics via the embedded nil interface.
type fakeCourtService struct {
	court.Service
	courts  map[int]*court.Court
	ownerID string
}

func (f *fakeCourtService) GetByID(_ context.Context, id int) (*court.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, court.ErrNotFound
	}
	return c, nil
}

func (f *fakeCourtService) GetSubCourtByID(_ context.Context, id int) (*court.SubCourt, error) {
	for _, c := range f.courts {
		for _, sc := range c.SubCourts {
			if sc.ID == id {
				return sc, nil
			}
		}
	}
	return nil, court.ErrSubCourtNotFound
}

func (f *fakeCourtService) IsOwner(_ context.Context, _ int, userID string) (bool, error) {
	return userID == f.ownerID, nil
}

type fakeTimeslotService struct {
	timeslot.Service
	slots         []*timeslot.TimeSlot
	holiday       *timeslot.Holiday
	weekSurcharge *timeslot.WeekSurcharge
}

func (f *fakeTimeslotService) ListSlots(_ context.Context) ([]*timeslot.TimeSlot, error) {
	return f.slots, nil
}

func (f *fakeTimeslotService) HolidayFor(_ context.Context, date time.Time) (*timeslot.Holiday, error) {
	if f.holiday != nil && f.holiday.Date.Equal(date) {
		return f.holiday, nil
	}
	return nil, nil
}

func (f *fakeTimeslotService) WeekSurchargeFor(_ context.Context, weekday time.Weekday) (*timeslot.WeekSurcharge, error) {
	if f.weekSurcharge != nil && f.weekSurcharge.Weekday == weekday {
		return f.weekSurcharge, nil
	}
	return nil, nil
}

const (
	customerID = "11111111-1111-1111-1111-111111111111"
	ownerID    = "22222222-2222-2222-2222-222222222222"
	strangerID = "33333333-3333-3333-3333-333333333333"
)

func fixture() (Service, *fakeRepo) {
	courts := &fakeCourtService{
		ownerID: ownerID,
		courts: map[int]*court.Court{
			1: {
				ID:        1,
				OwnerID:   ownerID,
				Name:      "Facility X",
				OpenTime:  "08:00:00",
				CloseTime: "22:00:00",
				SubCourts: []*court.SubCourt{
					{ID: 1, CourtID: 1, Name: "Court A1", BaseRate: 100_000, Status: court.SubCourtActive},
					{ID: 2, CourtID: 1, Name: "Court A2", BaseRate: 150_000, Status: court.SubCourtActive},
					{ID: 3, CourtID: 1, Name: "Court A3", BaseRate: 150_000, Status: court.SubCourtMaintenance},
				},
			},
		},
	}
	slots := &fakeTimeslotService{
		slots: []*timeslot.TimeSlot{
			{ID: 10, StartTime: "06:00:00", EndTime: "07:00:00", Surcharge: 0},
			{ID: 11, StartTime: "09:00:00", EndTime: "10:00:00", Surcharge: 0},
			{ID: 12, StartTime: "10:00:00", EndTime: "11:00:00", Surcharge: 20_000},
			{ID: 13, StartTime: "18:00:00", EndTime: "19:00:00", Surcharge: 50_000},
		},
	}

	repo := newFakeRepo()
	return NewService(repo, courts, slots, time.UTC), repo
}

func bookingDate() time.Time {
	return time.Now().Truncate(24 * time.Hour).AddDate(0, 0, 7)
}

func TestAvailability(t *testing.T) {
	svc, _ := fixture()

	result, err := svc.Availability(context.Background(), 1, bookingDate())
	require.NoError(t, err)

	require.Len(t, result.SubCourts, 2, "maintenance sub-courts are not offered")
	for _, sc := range result.SubCourts {
		require.Len(t, sc.Slots, 3, "the 06:00 slot is before opening")
		for _, sa := range sc.Slots {
			assert.Equal(t, sc.SubCourt.BaseRate+sa.Slot.Surcharge, sa.Price)
			assert.False(t, sa.IsTaken)
		}
	}
}

func TestAvailabilityMarksTakenSlots(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()
	date := bookingDate()

	_, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID:    1,
		Date:          date,
		SlotIDs:       []int{11},
		PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)

	result, err := svc.Availability(ctx, 1, date)
	require.NoError(t, err)

	for _, sc := range result.SubCourts {
		for _, sa := range sc.Slots {
			wantTaken := sc.SubCourt.ID == 1 && sa.Slot.ID == 11
			assert.Equal(t, wantTaken, sa.IsTaken, "sub-court %d slot %d", sc.SubCourt.ID, sa.Slot.ID)
		}
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _ := fixture()

	b, err := svc.Create(context.Background(), customerID, CreateRequest{
		SubCourtID:    1,
		Date:          bookingDate(),
		SlotIDs:       []int{12, 11}, // deliberately out of order
		PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, int64(220_000), b.TotalPrice)
	require.Len(t, b.Details, 2)
	assert.Equal(t, "09:00:00", b.Details[0].StartTime, "details are chronological")
	assert.Equal(t, "10:00:00", b.Details[1].StartTime)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()
	date := bookingDate()

	_, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{11}, PaymentMethod: "crypto",
	})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: time.Now().AddDate(0, 0, -2), SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrPastDate)

	_, err = svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: nil, PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrNoSlots)

	_, err = svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 99, Date: date, SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrSubCourtGone)

	_, err = svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 3, Date: date, SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrClosedSubCourt)

	// The 06:00 slot exists but falls before the court opens.
	_, err = svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{10}, PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestCreateMultiBooksAllOrNothing(t *testing.T) {
	svc, repo := fixture()
	ctx := context.Background()
	date := bookingDate()

	bookings, err := svc.CreateMulti(ctx, customerID, MultiRequest{
		Date:          date,
		PaymentMethod: PaymentTransfer,
		Selections: []Selection{
			{SubCourtID: 1, SlotIDs: []int{11, 12}},
			{SubCourtID: 2, SlotIDs: []int{13}},
		},
	})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(220_000), bookings[0].TotalPrice)
	assert.Equal(t, int64(200_000), bookings[1].TotalPrice)

	// A second checkout touching one taken slot books nothing at all.
	before := len(repo.bookings)
	_, err = svc.CreateMulti(ctx, strangerID, MultiRequest{
		Date:          date,
		PaymentMethod: PaymentCash,
		Selections: []Selection{
			{SubCourtID: 1, SlotIDs: []int{11}},
			{SubCourtID: 2, SlotIDs: []int{11}},
		},
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Len(t, repo.bookings, before)
}

func TestCreateMultiAppliesHolidaySurcharge(t *testing.T) {
	svc, _ := fixture()
	date := bookingDate()

	impl := svc.(*service)
	impl.timeslotService.(*fakeTimeslotService).holiday = &timeslot.Holiday{
		ID: 1, Date: date, Name: "National Day", Surcharge: 30_000,
	}

	b, err := svc.Create(context.Background(), customerID, CreateRequest{
		SubCourtID:    1,
		Date:          date,
		SlotIDs:       []int{11},
		PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(130_000), b.TotalPrice)
}

func TestGetByIDPermissions(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	b, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: bookingDate(), SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, b.ID, customerID, auth.RoleCustomer)
	assert.NoError(t, err, "the customer sees their own booking")

	_, err = svc.GetByID(ctx, b.ID, ownerID, auth.RoleOwner)
	assert.NoError(t, err, "the court owner sees bookings on their courts")

	_, err = svc.GetByID(ctx, b.ID, strangerID, auth.RoleAdmin)
	assert.NoError(t, err, "admins see everything")

	_, err = svc.GetByID(ctx, b.ID, strangerID, auth.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(ctx, b.ID, strangerID, auth.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden, "owners of other courts are rejected")
}

func TestCancel(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()
	date := bookingDate()

	b, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)

	err = svc.Cancel(ctx, b.ID, strangerID, auth.RoleCustomer)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Cancel(ctx, b.ID, customerID, auth.RoleCustomer))

	err = svc.Cancel(ctx, b.ID, customerID, auth.RoleCustomer)
	assert.ErrorIs(t, err, ErrNotCancellable, "already cancelled")

	// A cancelled booking frees its slots.
	_, err = svc.Create(ctx, strangerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	assert.NoError(t, err)
}

func TestCancelPaidBookingRejected(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	b, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: bookingDate(), SlotIDs: []int{11}, PaymentMethod: PaymentTransfer,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(ctx, b.ID))

	err = svc.Cancel(ctx, b.ID, customerID, auth.RoleCustomer)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCreateMultiRejectsRepeatedSlots(t *testing.T) {
	svc, repo := fixture()
	ctx := context.Background()
	date := bookingDate()

	// The same sub-court named twice must not book the same slot twice.
	_, err := svc.CreateMulti(ctx, customerID, MultiRequest{
		Date:          date,
		PaymentMethod: PaymentCash,
		Selections: []Selection{
			{SubCourtID: 1, SlotIDs: []int{11}},
			{SubCourtID: 1, SlotIDs: []int{11}},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.Empty(t, repo.bookings, "nothing is booked from a duplicated checkout")

	// Overlapping slot ids across selections of the same sub-court.
	_, err = svc.CreateMulti(ctx, customerID, MultiRequest{
		Date:          date,
		PaymentMethod: PaymentCash,
		Selections: []Selection{
			{SubCourtID: 1, SlotIDs: []int{11, 12}},
			{SubCourtID: 1, SlotIDs: []int{12, 13}},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.Empty(t, repo.bookings)

	// A slot repeated inside one selection.
	_, err = svc.CreateMulti(ctx, customerID, MultiRequest{
		Date:          date,
		PaymentMethod: PaymentCash,
		Selections: []Selection{
			{SubCourtID: 2, SlotIDs: []int{13, 13}},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateSlot)
	assert.Empty(t, repo.bookings)

	// The same slot on different sub-courts is fine.
	bookings, err := svc.CreateMulti(ctx, customerID, MultiRequest{
		Date:          date,
		PaymentMethod: PaymentCash,
		Selections: []Selection{
			{SubCourtID: 1, SlotIDs: []int{11}},
			{SubCourtID: 2, SlotIDs: []int{11}},
		},
	})
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestCreateRejectsUnknownSlot(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Create(context.Background(), customerID, CreateRequest{
		SubCourtID: 1, Date: bookingDate(), SlotIDs: []int{999}, PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrSlotUnknown)
}

func TestCreateMultiAppliesWeekSurcharge(t *testing.T) {
	svc, _ := fixture()
	date := bookingDate()

	impl := svc.(*service)
	impl.timeslotService.(*fakeTimeslotService).weekSurcharge = &timeslot.WeekSurcharge{
		ID: 1, Weekday: date.Weekday(), Surcharge: 40_000,
	}

	b, err := svc.Create(context.Background(), customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(140_000), b.TotalPrice)
}

func TestPastDateFollowsFacilityCalendar(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	impl := svc.(*service)
	impl.loc = time.FixedZone("ICT", 7*3600)
	// 18:00 UTC on Jan 1 is already 01:00 on Jan 2 at the facility.
	impl.now = func() time.Time {
		return time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	}

	_, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID:    1,
		Date:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		SlotIDs:       []int{11},
		PaymentMethod: PaymentCash,
	})
	assert.ErrorIs(t, err, ErrPastDate, "the facility's Jan 1 is over")

	_, err = svc.Create(ctx, customerID, CreateRequest{
		SubCourtID:    1,
		Date:          time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		SlotIDs:       []int{11},
		PaymentMethod: PaymentCash,
	})
	assert.NoError(t, err, "the facility's current date is bookable")
}

func TestRecordDeposit(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	b, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: bookingDate(), SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)

	err = svc.RecordDeposit(ctx, b.ID, strangerID, auth.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden, "owners of other courts cannot record deposits")

	require.NoError(t, svc.RecordDeposit(ctx, b.ID, ownerID, auth.RoleOwner))

	got, err := svc.GetByID(ctx, b.ID, customerID, auth.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, StatusDeposited, got.Status)

	err = svc.RecordDeposit(ctx, b.ID, ownerID, auth.RoleOwner)
	assert.ErrorIs(t, err, ErrNotDepositable, "a deposit can only be recorded once")
}

func TestStatsOverview(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()
	date := bookingDate()

	b1, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{11}, PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)
	b2, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 1, Date: date, SlotIDs: []int{12}, PaymentMethod: PaymentTransfer,
	})
	require.NoError(t, err)
	b3, err := svc.Create(ctx, customerID, CreateRequest{
		SubCourtID: 2, Date: date, SlotIDs: []int{13}, PaymentMethod: PaymentCash,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(ctx, b2.ID))
	require.NoError(t, svc.Cancel(ctx, b3.ID, customerID, auth.RoleCustomer))
	_ = b1

	stats, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Paid)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, int64(120_000), stats.Revenue, "only paid bookings count as revenue")
}
