package services

import (
	"time"

	"github.com/schilo132/real-estate-property-reservations-api/domain"
)

// CapacityResult reports the outcome of an occupancy check at the two
// boundary instants of a candidate stay.
type CapacityResult int

const (
	CapacityOK CapacityResult = iota
	CapacityExceededAtCheckin
	CapacityExceededAtCheckout
)

// CheckCapacity decides whether the candidate stay fits next to the existing
// reservations of the same property without exceeding its guest vacancies.
//
// Occupancy is measured only at the candidate's checkin and checkout
// instants. For every existing reservation whose time frame contains one of
// those instants (both ends inclusive) the guests accumulate into a running
// sum per instant, and the check fails as soon as either sum plus the
// candidate's guests crosses the vacancy limit. Inclusive bounds mean a stay
// whose checkout equals another's checkin shares that calendar day, both
// counting toward occupancy on it.
//
// Because only the two boundary instants are sampled, existing reservations
// that jointly saturate an interior day without touching either instant are
// not detected. That is the admission policy, not an oversight of this
// function.
func CheckCapacity(candidate *domain.Reservation, existing domain.Reservations, vacancies int) CapacityResult {
	occupiedAtCheckin := 0
	occupiedAtCheckout := 0
	for _, reservation := range existing {
		if withinStay(candidate.CheckinDate, reservation) {
			occupiedAtCheckin += reservation.Guests
			if occupiedAtCheckin+candidate.Guests > vacancies {
				return CapacityExceededAtCheckin
			}
		}
		if withinStay(candidate.CheckoutDate, reservation) {
			occupiedAtCheckout += reservation.Guests
			if occupiedAtCheckout+candidate.Guests > vacancies {
				return CapacityExceededAtCheckout
			}
		}
	}
	return CapacityOK
}

func withinStay(instant time.Time, reservation *domain.Reservation) bool {
	return !instant.Before(reservation.CheckinDate) && !instant.After(reservation.CheckoutDate)
}
