package domain

import "math"

// Hotel tiers selectable on the booking card. Empty string means no hotel.
const (
	HotelNone      = ""
	HotelThreeStar = "3 Star"
	HotelFiveStar  = "5 Star"
)

// Per-person-per-day hotel rates, discounted by a fixed factor when charged.
const (
	threeStarRate = 800
	fiveStarRate  = 1000
	hotelDiscount = 0.8
)

// PriceDetail is the full breakdown behind a displayed package price.
type PriceDetail struct {
	People        int    `json:"people"`
	Days          int    `json:"days"`
	PricePerDay   int64  `json:"pricePerDay"`
	Hotel         string `json:"hotel"`
	BaseTotal     int64  `json:"baseTotal"`
	TierRate      int64  `json:"tierRate"`
	TierSurcharge int64  `json:"tierSurcharge"`
	Total         int64  `json:"total"`
}

// HotelRate returns the per-person-per-day rate for a tier, 0 for none.
func HotelRate(hotel string) int64 {
	switch hotel {
	case HotelThreeStar:
		return threeStarRate
	case HotelFiveStar:
		return fiveStarRate
	default:
		return 0
	}
}

// TierSurcharge is the discounted hotel charge for the given party,
// independent of whether the tier is currently selected.
func TierSurcharge(people, days int, hotel string) int64 {
	rate := HotelRate(hotel)
	if rate == 0 {
		return 0
	}
	return roundMoney(float64(int64(people)*int64(days)*rate) * hotelDiscount)
}

// ComputePrice derives the package price:
// people*days*pricePerDay plus the tier surcharge. This is the only way a
// price may be produced; nothing stores a price it did not derive here.
func ComputePrice(people, days int, pricePerDay int64, hotel string) PriceDetail {
	base := int64(people) * int64(days) * pricePerDay
	surcharge := TierSurcharge(people, days, hotel)
	return PriceDetail{
		People:        people,
		Days:          days,
		PricePerDay:   pricePerDay,
		Hotel:         hotel,
		BaseTotal:     base,
		TierRate:      HotelRate(hotel),
		TierSurcharge: surcharge,
		Total:         base + surcharge,
	}
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}
