package booking

import "errors"

var (
	ErrInvalidSeatID       = errors.New("invalid seat id")
	ErrMetadataFetch       = errors.New("movie metadata unavailable")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
	ErrIdentityPending     = errors.New("identity not resolved yet")
	ErrSessionClosed       = errors.New("booking session closed")
	ErrSessionCommitted    = errors.New("booking session already committed")
	ErrPurchaseInFlight    = errors.New("purchase already in progress")
)

// PublicMessage returns the text of the booking error err wraps, without
// the upstream detail behind it. Unknown errors become "purchase failed".
func PublicMessage(err error) string {
	for _, known := range []error{
		ErrMetadataFetch,
		ErrIdentityUnavailable,
		ErrIdentityPending,
		ErrSessionClosed,
		ErrSessionCommitted,
		ErrPurchaseInFlight,
		ErrInvalidSeatID,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "purchase failed"
}
