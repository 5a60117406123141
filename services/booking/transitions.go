package booking

import "taskhive/models"

// stage orders the non-terminal path; cancelled sits outside it.
var stage = map[string]int{
	models.BookingPending:    0,
	models.BookingConfirmed:  1,
	models.BookingInProgress: 2,
	models.BookingCompleted:  3,
}

func isTerminal(status string) bool {
	return status == models.BookingCompleted || status == models.BookingCancelled
}

// canTransition reports whether from -> to is a legal lifecycle move.
// Forward moves may skip stages; any open booking may be cancelled.
func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	if isTerminal(from) {
		return false
	}
	if to == models.BookingCancelled {
		return true
	}
	next, ok := stage[to]
	if !ok {
		return false
	}
	return next > stage[from]
}
