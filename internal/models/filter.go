package models

import "time"

// ProductFilter restricts a product query. Nil fields do not restrict.
// DateFrom and DateTo bound Date inclusively.
type ProductFilter struct {
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// Validate checks the filter before it reaches a store.
func (f ProductFilter) Validate() error {
	if f.Status != nil && !f.Status.Valid() {
		return &ValidationError{Field: "status", Message: "status must be one of: active inactive"}
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return &ValidationError{Field: "startDate", Message: "startDate must not be after endDate"}
	}
	return nil
}

// Matches reports whether p satisfies every restriction of f.
func (f ProductFilter) Matches(p Product) bool {
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.DateFrom != nil && p.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && p.Date.After(*f.DateTo) {
		return false
	}
	return true
}
