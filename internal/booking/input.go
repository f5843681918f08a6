// Package booking collects trip parameters, derives the package price, and
// runs the purchase against the backend and the payment gateway.
package booking

import (
	"time"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/utils"
)

const (
	minPeople = 2
	maxPeople = 10
)

// Input is the client-local booking form for one package. Price is derived;
// every mutation of people, days or hotel recomputes it synchronously and
// nothing else may set it.
type Input struct {
	pkg       models.Package
	people    int
	days      int
	hotel     string
	startDate time.Time
	payOnline bool
	detail    domain.PriceDetail
}

// NewInput starts a booking form the way the card mounts: two people, the
// package's own duration, no hotel, starting today, paying online.
func NewInput(pkg models.Package) *Input {
	in := &Input{
		pkg:       pkg,
		people:    minPeople,
		days:      pkg.Days,
		hotel:     domain.HotelNone,
		startDate: utils.NowUTC(),
		payOnline: true,
	}
	in.recompute()
	return in
}

func (in *Input) People() int          { return in.people }
func (in *Input) Days() int            { return in.days }
func (in *Input) Hotel() string        { return in.hotel }
func (in *Input) StartDate() time.Time { return in.startDate }
func (in *Input) PayOnline() bool      { return in.payOnline }
func (in *Input) Price() int64         { return in.detail.Total }
func (in *Input) Detail() domain.PriceDetail {
	return in.detail
}

// CanDecrementPeople mirrors the card's button disablement, which only
// kicks in at 1. The handler guard below refuses earlier; the mismatch is
// intentional (kept as shipped).
func (in *Input) CanDecrementPeople() bool { return in.people > 1 }

func (in *Input) DecrementPeople() bool {
	if in.people <= minPeople {
		return false
	}
	in.people--
	in.recompute()
	return true
}

func (in *Input) IncrementPeople() bool {
	if in.people >= maxPeople {
		return false
	}
	in.people++
	in.recompute()
	return true
}

// CanDecrementDays mirrors the button disablement at the package minimum.
func (in *Input) CanDecrementDays() bool { return in.days > in.pkg.Days }

func (in *Input) DecrementDays() bool {
	if in.days <= in.pkg.Days {
		return false
	}
	in.days--
	in.recompute()
	return true
}

// IncrementDays has no ceiling.
func (in *Input) IncrementDays() {
	in.days++
	in.recompute()
}

// SelectHotel selects a tier; selecting the active tier clears it.
func (in *Input) SelectHotel(tier string) {
	if in.hotel == tier {
		in.hotel = domain.HotelNone
	} else {
		in.hotel = tier
	}
	in.recompute()
}

// TierSurcharge previews what a tier would add for the current party,
// whether or not it is selected.
func (in *Input) TierSurcharge(tier string) int64 {
	return domain.TierSurcharge(in.people, in.days, tier)
}

func (in *Input) SetStartDate(t time.Time) { in.startDate = t }

func (in *Input) SetPayOnline(v bool) { in.payOnline = v }

func (in *Input) recompute() {
	in.detail = domain.ComputePrice(in.people, in.days, in.pkg.PricePerDay, in.hotel)
}

// Payload snapshots the form in the backend wire format, startDate
// normalized to RFC 3339.
func (in *Input) Payload() models.BookingPayload {
	return models.BookingPayload{
		PackageName:   in.pkg.Name,
		PackageDays:   in.days,
		PackagePrice:  in.detail.Total,
		People:        in.people,
		StartDate:     utils.FormatISO(in.startDate),
		PlaceList:     in.pkg.PlaceList,
		AdventureList: in.pkg.AdventureList,
		Hotel:         in.hotel,
	}
}
