package timeslot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	slots          []*TimeSlot
	holidays       []*Holiday
	weekSurcharges []*WeekSurcharge
	nextID         int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) CreateSlot(_ context.Context, s *TimeSlot) error {
	s.ID = r.nextID
	r.nextID++
	copied := *s
	r.slots = append(r.slots, &copied)
	return nil
}

func (r *fakeRepo) GetSlotByID(_ context.Context, id int) (*TimeSlot, error) {
	for _, s := range r.slots {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListSlots(_ context.Context) ([]*TimeSlot, error) {
	return r.slots, nil
}

func (r *fakeRepo) UpdateSlot(_ context.Context, s *TimeSlot) error {
	for i, existing := range r.slots {
		if existing.ID == s.ID {
			copied := *s
			r.slots[i] = &copied
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) DeleteSlot(_ context.Context, id int) error {
	for i, s := range r.slots {
		if s.ID == id {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *fakeRepo) CreateHoliday(_ context.Context, h *Holiday) error {
	for _, existing := range r.holidays {
		if existing.Date.Equal(h.Date) {
			return ErrDuplicateHoliday
		}
	}
	h.ID = r.nextID
	r.nextID++
	copied := *h
	r.holidays = append(r.holidays, &copied)
	return nil
}

func (r *fakeRepo) ListHolidays(_ context.Context) ([]*Holiday, error) {
	return r.holidays, nil
}

func (r *fakeRepo) GetHolidayByDate(_ context.Context, date time.Time) (*Holiday, error) {
	for _, h := range r.holidays {
		if h.Date.Equal(date) {
			return h, nil
		}
	}
	return nil, ErrHolidayNotFound
}

func (r *fakeRepo) DeleteHoliday(_ context.Context, id int) error {
	for i, h := range r.holidays {
		if h.ID == id {
			r.holidays = append(r.holidays[:i], r.holidays[i+1:]...)
			return nil
		}
	}
	return ErrHolidayNotFound
}

func (r *fakeRepo) CreateWeekSurcharge(_ context.Context, ws *WeekSurcharge) error {
	for _, existing := range r.weekSurcharges {
		if existing.Weekday == ws.Weekday {
			return ErrDuplicateWeekSurcharge
		}
	}
	ws.ID = r.nextID
	r.nextID++
	copied := *ws
	r.weekSurcharges = append(r.weekSurcharges, &copied)
	return nil
}

func (r *fakeRepo) ListWeekSurcharges(_ context.Context) ([]*WeekSurcharge, error) {
	return r.weekSurcharges, nil
}

func (r *fakeRepo) GetWeekSurchargeByWeekday(_ context.Context, weekday time.Weekday) (*WeekSurcharge, error) {
	for _, ws := range r.weekSurcharges {
		if ws.Weekday == weekday {
			copied := *ws
			return &copied, nil
		}
	}
	return nil, ErrWeekSurchargeNotFound
}

func (r *fakeRepo) UpdateWeekSurcharge(_ context.Context, ws *WeekSurcharge) error {
	for i, existing := range r.weekSurcharges {
		if existing.ID == ws.ID {
			copied := *ws
			r.weekSurcharges[i] = &copied
			return nil
		}
	}
	return ErrWeekSurchargeNotFound
}

func (r *fakeRepo) DeleteWeekSurcharge(_ context.Context, id int) error {
	for i, ws := range r.weekSurcharges {
		if ws.ID == id {
			r.weekSurcharges = append(r.weekSurcharges[:i], r.weekSurcharges[i+1:]...)
			return nil
		}
	}
	return ErrWeekSurchargeNotFound
}

func TestCreateSlotValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "0900", EndTime: "10:00:00"})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "10:00:00", EndTime: "09:00:00"})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "09:00:00", EndTime: "09:00:00"})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "09:00:00", EndTime: "10:00:00", Surcharge: -1})
	assert.ErrorIs(t, err, ErrInvalidSurcharge)

	slot, err := svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "09:00:00", EndTime: "10:00:00"})
	require.NoError(t, err)
	assert.NotZero(t, slot.ID)
}

func TestCreateSlotRejectsOverlap(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "09:00:00", EndTime: "11:00:00"})
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end string
	}{
		{"identical", "09:00:00", "11:00:00"},
		{"starts inside", "10:00:00", "12:00:00"},
		{"ends inside", "08:00:00", "10:00:00"},
		{"covers", "08:00:00", "12:00:00"},
		{"contained", "09:30:00", "10:30:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSlot(ctx, CreateSlotRequest{StartTime: tc.start, EndTime: tc.end})
			assert.ErrorIs(t, err, ErrOverlap)
		})
	}

	// Adjacent slots share a boundary but do not overlap.
	_, err = svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "11:00:00", EndTime: "12:00:00"})
	assert.NoError(t, err)
}

func TestUpdateSlotSkipsSelfOverlap(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, CreateSlotRequest{StartTime: "09:00:00", EndTime: "10:00:00"})
	require.NoError(t, err)

	updated, err := svc.UpdateSlot(ctx, slot.ID, UpdateSlotRequest{
		StartTime: "09:00:00",
		EndTime:   "10:30:00",
		Surcharge: 15_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30:00", updated.EndTime)
	assert.Equal(t, int64(15_000), updated.Surcharge)
}

func TestHolidayFor(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tet := time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateHoliday(ctx, CreateHolidayRequest{Date: tet, Name: "Tet", Surcharge: 100_000})
	require.NoError(t, err)

	found, err := svc.HolidayFor(ctx, tet)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	none, err := svc.HolidayFor(ctx, tet.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, none, "regular days have no holiday entry")

	_, err = svc.CreateHoliday(ctx, CreateHolidayRequest{Date: tet, Name: "Tet again", Surcharge: 1})
	assert.ErrorIs(t, err, ErrDuplicateHoliday)
}

func TestWeekSurchargeFor(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateWeekSurcharge(ctx, CreateWeekSurchargeRequest{Weekday: time.Saturday, Surcharge: 30_000})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := svc.WeekSurchargeFor(ctx, time.Saturday)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(30_000), found.Surcharge)

	none, err := svc.WeekSurchargeFor(ctx, time.Tuesday)
	require.NoError(t, err)
	assert.Nil(t, none, "weekdays without an entry carry no surcharge")

	_, err = svc.CreateWeekSurcharge(ctx, CreateWeekSurchargeRequest{Weekday: time.Saturday, Surcharge: 1})
	assert.ErrorIs(t, err, ErrDuplicateWeekSurcharge)
}

func TestWeekSurchargeValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateWeekSurcharge(ctx, CreateWeekSurchargeRequest{Weekday: 7, Surcharge: 1})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = svc.CreateWeekSurcharge(ctx, CreateWeekSurchargeRequest{Weekday: time.Sunday, Surcharge: -1})
	assert.ErrorIs(t, err, ErrInvalidSurcharge)
}

func TestUpdateWeekSurcharge(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateWeekSurcharge(ctx, CreateWeekSurchargeRequest{Weekday: time.Sunday, Surcharge: 10_000})
	require.NoError(t, err)

	updated, err := svc.UpdateWeekSurcharge(ctx, created.ID, 25_000)
	require.NoError(t, err)
	assert.Equal(t, int64(25_000), updated.Surcharge)

	_, err = svc.UpdateWeekSurcharge(ctx, 404, 1)
	assert.ErrorIs(t, err, ErrWeekSurchargeNotFound)

	_, err = svc.UpdateWeekSurcharge(ctx, created.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidSurcharge)

	require.NoError(t, svc.DeleteWeekSurcharge(ctx, created.ID))
	gone, err := svc.WeekSurchargeFor(ctx, time.Sunday)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
