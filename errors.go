package probehash

// CapacityExceededError - custom error to inform that a table's fill
// ceiling has been reached and an insert of a new key was refused.
type CapacityExceededError struct {
	msg string
}

// Error - used to notify that a table's capacity is exhausted.
func (E CapacityExceededError) Error() string {
	if E.msg == "" {
		return "capacity exceeded"
	}
	return E.msg
}

// ProbeBudgetExhaustedError - custom error to inform that a variant's
// allotted probes (slots, sub-arrays, or levels) were exhausted without
// finding a slot for the key.
type ProbeBudgetExhaustedError struct {
	msg string
}

// Error - used to notify that the probe budget ran out.
func (E ProbeBudgetExhaustedError) Error() string {
	if E.msg == "" {
		return "probe budget exhausted"
	}
	return E.msg
}

// InvalidArgumentError - custom error to inform that Create was called
// with a bad kind, size, or param.
type InvalidArgumentError struct {
	msg string
}

// Error - used to notify that a Create argument was invalid.
func (E InvalidArgumentError) Error() string {
	if E.msg == "" {
		return "invalid argument"
	}
	return E.msg
}
