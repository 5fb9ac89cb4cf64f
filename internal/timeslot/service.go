package timeslot

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Service interface {
	CreateSlot(ctx context.Context, req CreateSlotRequest) (*TimeSlot, error)
	GetSlot(ctx context.Context, id int) (*TimeSlot, error)
	ListSlots(ctx context.Context) ([]*TimeSlot, error)
	UpdateSlot(ctx context.Context, id int, req UpdateSlotRequest) (*TimeSlot, error)
	DeleteSlot(ctx context.Context, id int) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (*Holiday, error)
	ListHolidays(ctx context.Context) ([]*Holiday, error)
	HolidayFor(ctx context.Context, date time.Time) (*Holiday, error)
	DeleteHoliday(ctx context.Context, id int) error

	CreateWeekSurcharge(ctx context.Context, req CreateWeekSurchargeRequest) (*WeekSurcharge, error)
	ListWeekSurcharges(ctx context.Context) ([]*WeekSurcharge, error)
	WeekSurchargeFor(ctx context.Context, weekday time.Weekday) (*WeekSurcharge, error)
	UpdateWeekSurcharge(ctx context.Context, id int, surcharge int64) (*WeekSurcharge, error)
	DeleteWeekSurcharge(ctx context.Context, id int) error
}

type CreateSlotRequest struct {
	StartTime string
	EndTime   string
	Surcharge int64
}

type UpdateSlotRequest struct {
	StartTime string
	EndTime   string
	Surcharge int64
}

type CreateHolidayRequest struct {
	Date      time.Time
	Name      string
	Surcharge int64
}

type CreateWeekSurchargeRequest struct {
	Weekday   time.Weekday
	Surcharge int64
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validTimeOfDay(value string) bool {
	_, err := time.Parse("15:04:05", value)
	return err == nil
}

// validateSlot checks the time range and rejects slots overlapping an
// existing one. Times are HH:MM:SS strings, so string comparison matches
// chronological order.
func (s *service) validateSlot(ctx context.Context, slot TimeSlot) error {
	if !validTimeOfDay(slot.StartTime) || !validTimeOfDay(slot.EndTime) {
		return ErrInvalidTimeRange
	}
	if slot.StartTime >= slot.EndTime {
		return ErrInvalidTimeRange
	}
	if slot.Surcharge < 0 {
		return ErrInvalidSurcharge
	}

	existing, err := s.repo.ListSlots(ctx)
	if err != nil {
		return fmt.Errorf("list time slots failed: %w", err)
	}
	for _, other := range existing {
		if other.ID == slot.ID {
			continue
		}
		if slot.Overlaps(*other) {
			return ErrOverlap
		}
	}
	return nil
}

func (s *service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*TimeSlot, error) {
	slot := &TimeSlot{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Surcharge: req.Surcharge,
	}
	if err := s.validateSlot(ctx, *slot); err != nil {
		return nil, err
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) GetSlot(ctx context.Context, id int) (*TimeSlot, error) {
	return s.repo.GetSlotByID(ctx, id)
}

func (s *service) ListSlots(ctx context.Context) ([]*TimeSlot, error) {
	return s.repo.ListSlots(ctx)
}

func (s *service) UpdateSlot(ctx context.Context, id int, req UpdateSlotRequest) (*TimeSlot, error) {
	slot, err := s.repo.GetSlotByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.Surcharge = req.Surcharge
	if err := s.validateSlot(ctx, *slot); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) DeleteSlot(ctx context.Context, id int) error {
	return s.repo.DeleteSlot(ctx, id)
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (*Holiday, error) {
	if req.Surcharge < 0 {
		return nil, ErrInvalidSurcharge
	}
	holiday := &Holiday{
		Date:      req.Date,
		Name:      req.Name,
		Surcharge: req.Surcharge,
	}
	if err := s.repo.CreateHoliday(ctx, holiday); err != nil {
		return nil, err
	}
	return holiday, nil
}

func (s *service) ListHolidays(ctx context.Context) ([]*Holiday, error) {
	return s.repo.ListHolidays(ctx)
}

// HolidayFor returns the holiday entry for the given date, or nil when the
// date is a regular day.
func (s *service) HolidayFor(ctx context.Context, date time.Time) (*Holiday, error) {
	holiday, err := s.repo.GetHolidayByDate(ctx, date)
	if err != nil {
		if errors.Is(err, ErrHolidayNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return holiday, nil
}

func (s *service) DeleteHoliday(ctx context.Context, id int) error {
	return s.repo.DeleteHoliday(ctx, id)
}

func (s *service) CreateWeekSurcharge(ctx context.Context, req CreateWeekSurchargeRequest) (*WeekSurcharge, error) {
	if req.Weekday < time.Sunday || req.Weekday > time.Saturday {
		return nil, ErrInvalidWeekday
	}
	if req.Surcharge < 0 {
		return nil, ErrInvalidSurcharge
	}
	w := &WeekSurcharge{
		Weekday:   req.Weekday,
		Surcharge: req.Surcharge,
	}
	if err := s.repo.CreateWeekSurcharge(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) ListWeekSurcharges(ctx context.Context) ([]*WeekSurcharge, error) {
	return s.repo.ListWeekSurcharges(ctx)
}

// WeekSurchargeFor returns the surcharge entry for the given weekday, or nil
// when the weekday carries none.
func (s *service) WeekSurchargeFor(ctx context.Context, weekday time.Weekday) (*WeekSurcharge, error) {
	w, err := s.repo.GetWeekSurchargeByWeekday(ctx, weekday)
	if err != nil {
		if errors.Is(err, ErrWeekSurchargeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

func (s *service) UpdateWeekSurcharge(ctx context.Context, id int, surcharge int64) (*WeekSurcharge, error) {
	if surcharge < 0 {
		return nil, ErrInvalidSurcharge
	}

	existing, err := s.repo.ListWeekSurcharges(ctx)
	if err != nil {
		return nil, err
	}
	var w *WeekSurcharge
	for _, candidate := range existing {
		if candidate.ID == id {
			w = candidate
			break
		}
	}
	if w == nil {
		return nil, ErrWeekSurchargeNotFound
	}

	w.Surcharge = surcharge
	if err := s.repo.UpdateWeekSurcharge(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) DeleteWeekSurcharge(ctx context.Context, id int) error {
	return s.repo.DeleteWeekSurcharge(ctx, id)
}
