// Package cart implements the multi-sub-court selection cart used during
// checkout. It accumulates (sub-court, time slot) picks, keeps per-sub-court
// slot lists in chronological order, derives the aggregate price, and builds
// one booking request per sub-court on submit.
package cart

import (
	"sort"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrEmptySelection = &apperror.AppError{Code: 400, Message: "no sub-court selected"}
	ErrEmptySubCourt  = &apperror.AppError{Code: 400, Message: "a selected sub-court has no time slots"}
)

// SubCourt is the snapshot of a bookable surface as served by the
// availability query. BaseRate is in VND.
type SubCourt struct {
	ID       int
	Name     string
	BaseRate int64
}

// Slot is one facility-wide time interval for a specific date. Times are
// HH:MM:SS strings; lexicographic order equals chronological order.
type Slot struct {
	ID        int
	StartTime string
	EndTime   string
	Surcharge int64
	IsTaken   bool
}

// SlotSelection is a picked slot with its price frozen at selection time.
type SlotSelection struct {
	SlotID    int
	StartTime string
	EndTime   string
	Surcharge int64
	Price     int64
}

// Request is one per-sub-court booking submission. The booking endpoint is
// scoped to a single sub-court, so a multi-sub-court checkout produces a
// sequence of these.
type Request struct {
	SubCourtID    int
	Date          time.Time
	SlotIDs       []int
	PaymentMethod string
}

type entry struct {
	subCourt SubCourt
	slots    []SlotSelection
}

// Cart tracks the current selection. It is not safe for concurrent use;
// each checkout session owns its own instance.
type Cart struct {
	order   []int
	entries map[int]*entry
}

func New() *Cart {
	return &Cart{entries: make(map[int]*entry)}
}

// ToggleSubCourt adds the sub-court with an empty slot list if absent, or
// removes it (discarding its slots) if present.
func (c *Cart) ToggleSubCourt(sub SubCourt) {
	if _, ok := c.entries[sub.ID]; ok {
		c.RemoveSubCourt(sub.ID)
		return
	}
	c.entries[sub.ID] = &entry{subCourt: sub}
	c.order = append(c.order, sub.ID)
}

// ToggleSlot selects the slot under the given sub-court, or deselects it if
// already selected. Toggling under an absent sub-court or toggling a taken
// slot is a no-op.
func (c *Cart) ToggleSlot(subCourtID int, slot Slot) {
	e, ok := c.entries[subCourtID]
	if !ok {
		return
	}

	for i, sel := range e.slots {
		if sel.SlotID == slot.ID {
			e.slots = append(e.slots[:i], e.slots[i+1:]...)
			return
		}
	}

	if slot.IsTaken {
		return
	}

	e.slots = append(e.slots, SlotSelection{
		SlotID:    slot.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Surcharge: slot.Surcharge,
		Price:     e.subCourt.BaseRate + slot.Surcharge,
	})
	sort.SliceStable(e.slots, func(i, j int) bool {
		return e.slots[i].StartTime < e.slots[j].StartTime
	})
}

// RemoveSubCourt unconditionally drops the sub-court entry.
func (c *Cart) RemoveSubCourt(subCourtID int) {
	if _, ok := c.entries[subCourtID]; !ok {
		return
	}
	delete(c.entries, subCourtID)
	for i, id := range c.order {
		if id == subCourtID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// ClearAll resets the cart to empty.
func (c *Cart) ClearAll() {
	c.order = nil
	c.entries = make(map[int]*entry)
}

func (c *Cart) IsSubCourtSelected(subCourtID int) bool {
	_, ok := c.entries[subCourtID]
	return ok
}

func (c *Cart) IsSlotSelected(subCourtID, slotID int) bool {
	e, ok := c.entries[subCourtID]
	if !ok {
		return false
	}
	for _, sel := range e.slots {
		if sel.SlotID == slotID {
			return true
		}
	}
	return false
}

// SelectedSlots returns the chronologically ordered selections for one
// sub-court, or nil when the sub-court is not selected.
func (c *Cart) SelectedSlots(subCourtID int) []SlotSelection {
	e, ok := c.entries[subCourtID]
	if !ok {
		return nil
	}
	out := make([]SlotSelection, len(e.slots))
	copy(out, e.slots)
	return out
}

// SubCourts returns the selected sub-courts in selection order.
func (c *Cart) SubCourts() []SubCourt {
	out := make([]SubCourt, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id].subCourt)
	}
	return out
}

// TotalPrice is the sum of every selected slot's price across all
// sub-courts.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, e := range c.entries {
		for _, sel := range e.slots {
			total += sel.Price
		}
	}
	return total
}

// TotalSlotsCount is the number of selected slots across all sub-courts.
func (c *Cart) TotalSlotsCount() int {
	count := 0
	for _, e := range c.entries {
		count += len(e.slots)
	}
	return count
}

// IsValid reports whether the cart can be submitted: at least one sub-court
// is selected and every selected sub-court has at least one slot.
func (c *Cart) IsValid() bool {
	if len(c.entries) == 0 {
		return false
	}
	for _, e := range c.entries {
		if len(e.slots) == 0 {
			return false
		}
	}
	return true
}

// BuildRequests produces one booking request per selected sub-court, each
// carrying that sub-court's slot ids in chronological order. It fails when
// the cart is empty or when a selected sub-court has no slots.
func (c *Cart) BuildRequests(date time.Time, paymentMethod string) ([]Request, error) {
	if len(c.entries) == 0 {
		return nil, ErrEmptySelection
	}

	requests := make([]Request, 0, len(c.order))
	for _, id := range c.order {
		e := c.entries[id]
		if len(e.slots) == 0 {
			return nil, ErrEmptySubCourt.WithDetails(map[string]string{"sub_court": e.subCourt.Name})
		}
		slotIDs := make([]int, len(e.slots))
		for i, sel := range e.slots {
			slotIDs[i] = sel.SlotID
		}
		requests = append(requests, Request{
			SubCourtID:    id,
			Date:          date,
			SlotIDs:       slotIDs,
			PaymentMethod: paymentMethod,
		})
	}
	return requests, nil
}
