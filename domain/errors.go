package domain

import "errors"

var (
	errPropertyNotFound      error = errors.New("property not found")
	errAdvertisementNotFound error = errors.New("advertisement not found")
	errReservationNotFound   error = errors.New("reservation not found")

	// ErrDuplicateReservationCode is surfaced by a store whose unique index
	// rejected an insert. The admission path maps it to a conflict the
	// caller retries.
	ErrDuplicateReservationCode = errors.New("reservation code already exists")
	ErrDuplicatePropertyCode    = errors.New("property code already exists")

	// ErrCodeGenerationExhausted is an internal fault, not a user input
	// error: the code space holds 99999 slots and is normally abundant.
	ErrCodeGenerationExhausted = errors.New("no free reservation code found within the attempt bound")

	// ErrConcurrentAdmissionConflict means a competing admission won the
	// race between validation and insert; the caller should retry the whole
	// admission once.
	ErrConcurrentAdmissionConflict = errors.New("concurrent admission conflict, retry admission")

	// ErrAdvertisementDeletionNotAllowed backs the unconditional delete
	// guard: advertisements are never deletable, independent of cascades.
	ErrAdvertisementDeletionNotAllowed = errors.New("advertisements can not be deleted")
)

func ErrPropertyNotFound() error {
	return errPropertyNotFound
}

func ErrAdvertisementNotFound() error {
	return errAdvertisementNotFound
}

func ErrReservationNotFound() error {
	return errReservationNotFound
}

// Machine readable rejection reasons.
const (
	ReasonInvalidDateOrder                = "invalid_date_order"
	ReasonInsufficientVacancies           = "insufficient_vacancies"
	ReasonInsufficientVacanciesAtCheckin  = "insufficient_vacancies_at_checkin"
	ReasonInsufficientVacanciesAtCheckout = "insufficient_vacancies_at_checkout"
	ReasonDuplicateCode                   = "duplicate_code"
	ReasonInvalidField                    = "invalid_field"
)

// Rejection is the typed outcome of a failed validation. It carries the
// offending field and a machine readable reason so the caller can render a
// field level message. Rejections are recoverable, never fatal.
type Rejection struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func NewRejection(field string, reason string) *Rejection {
	return &Rejection{Field: field, Reason: reason}
}

func (r *Rejection) Error() string {
	return r.Field + ": " + r.Reason
}

// IsRejection unwraps err into a Rejection when the failure is a field
// level one, so callers can distinguish user input problems from store and
// internal faults.
func IsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}
