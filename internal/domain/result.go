package domain

// ErrorMarker is shown in place of a result when a line fails to evaluate
const ErrorMarker = "..."

// ResultState tells whether a line produced a value, nothing, or an error
type ResultState int

const (
	ResultEmpty ResultState = iota // Blank or comment line
	ResultValue
	ResultError
)

// Result is the outcome of evaluating one line
type Result struct {
	State ResultState
	Value Value
	Err   error
}

// EmptyResult is stored for blank and comment lines
func EmptyResult() Result {
	return Result{State: ResultEmpty}
}

// ValueResult wraps a successfully computed value
func ValueResult(v Value) Result {
	return Result{State: ResultValue, Value: v}
}

// ErrorResult wraps an evaluation failure
func ErrorResult(err error) Result {
	return Result{State: ResultError, Err: err}
}

// OK reports whether the result holds a value
func (r Result) OK() bool {
	return r.State == ResultValue
}

// IsError reports whether the line failed to evaluate
func (r Result) IsError() bool {
	return r.State == ResultError
}

// Equal compares results by state and value. Error details are ignored:
// a line that keeps failing has not changed.
func (r Result) Equal(other Result) bool {
	if r.State != other.State {
		return false
	}
	if r.State == ResultValue {
		return r.Value.Equal(other.Value)
	}
	return true
}

// String returns the display text: the value, the error marker, or ""
func (r Result) String() string {
	switch r.State {
	case ResultValue:
		return r.Value.String()
	case ResultError:
		return ErrorMarker
	default:
		return ""
	}
}
