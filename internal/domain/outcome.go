package domain

// Outcome is the uniform result wrapper returned by repository and service
// operations. Success is defined as "error list is empty", independent of
// whether a payload is present.
type Outcome struct {
	Payload any      `json:"payload,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK returns a successful outcome carrying payload.
func OK(payload any) Outcome {
	return Outcome{Payload: payload}
}

// Fail returns a failed outcome with one or more error messages.
func Fail(msgs ...string) Outcome {
	return Outcome{Errors: msgs}
}

// AddError appends an error message.
func (o *Outcome) AddError(msg string) {
	o.Errors = append(o.Errors, msg)
}

// Successful reports whether the outcome carries no errors.
func (o Outcome) Successful() bool {
	return len(o.Errors) == 0
}

// ErrorMessage joins the error list for HTTP responses. Empty when
// successful.
func (o Outcome) ErrorMessage() string {
	switch len(o.Errors) {
	case 0:
		return ""
	case 1:
		return o.Errors[0]
	default:
		s := o.Errors[0]
		for _, m := range o.Errors[1:] {
			s += ", " + m
		}
		return s
	}
}
