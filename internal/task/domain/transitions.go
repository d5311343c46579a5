package domain

// allowedTransitions is the advertised state machine. CancelTask also accepts
// completed -> canceled; callers that need the mutator's answer should call
// the mutator.
var allowedTransitions = map[Status][]Status{
	StatusActive:    {StatusCompleted, StatusCanceled},
	StatusCompleted: {StatusActive},
	StatusCanceled:  {StatusActive},
}

// CanTransition reports whether the static table lists from -> to.
func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from from.
func AllowedTransitions(from Status) []Status {
	return append([]Status(nil), allowedTransitions[from]...)
}
