package widgets

// AlertError is a recoverable user-input failure. Message is shown to the
// user as a blocking alert; Cause keeps the field-level detail.
type AlertError struct {
	Message string
	Cause   error
}

func (e *AlertError) Error() string { return e.Message }

func (e *AlertError) Unwrap() error { return e.Cause }
