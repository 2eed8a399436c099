package domain

import (
	"math"
	"strings"
	"time"
)

// ItemStatus is the visibility state of an item. Any status may move to any other.
type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
	ItemArchived ItemStatus = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemActive, ItemInactive, ItemArchived:
		return true
	}
	return false
}

// Item is a priced entry owned by a user. OwnerID is a weak reference.
type Item struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	Status      ItemStatus `json:"status"`
	OwnerID     int64      `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ItemPatch is a partial update. Nil fields and unset Nullables are left
// untouched; a set Description with a nil Value clears it.
type ItemPatch struct {
	Title       *string
	Description Nullable[string]
	Price       *float64
	Status      *ItemStatus
}

// Empty reports whether the patch supplies no field at all.
func (p ItemPatch) Empty() bool {
	return p.Title == nil && !p.Description.Set && p.Price == nil && p.Status == nil
}

// Apply copies every supplied field onto it.
func (p ItemPatch) Apply(it *Item) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Description.Set {
		it.Description = p.Description.clone()
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
}

// exactCents is 2^52. From there up every float64 is a whole number, so
// rounding to cents is a no-op and p*100 is skipped.
const exactCents = 1 << 52

// RoundPrice rounds half away from zero to two decimals (19.999 -> 20.00).
// Results may be non-finite for non-finite input.
func RoundPrice(p float64) float64 {
	if math.Abs(p) >= exactCents {
		return p
	}
	return math.Round(p*100) / 100
}

// FinitePrice reports whether p can be stored and encoded.
func FinitePrice(p float64) bool {
	return !math.IsInf(p, 0) && !math.IsNaN(p)
}

// NormalizeTitle trims surrounding whitespace.
func NormalizeTitle(t string) string {
	return strings.TrimSpace(t)
}
