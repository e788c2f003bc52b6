package project

// Status is the lifecycle column a project sits in.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusActive, StatusFinished}

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusFinished:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
