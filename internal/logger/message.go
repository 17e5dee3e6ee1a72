package logger

// Message is anything the logger can render as (possibly multi-line) text.
type Message interface {
	Describe() string
}

// Tracer is implemented by errors that carry a full trace.
// Its output is preferred over Error() when rendering.
type Tracer interface {
	Trace() string
}

// Text is a plain string message.
type Text string

// Describe implements Message.
func (t Text) Describe() string {
	return string(t)
}

type errMessage struct {
	err error
}

// Err wraps an error as a Message.
func Err(err error) Message {
	return errMessage{err: err}
}

// Describe renders the error. A typed nil, or an error whose methods
// panic, renders as "".
func (m errMessage) Describe() (s string) {
	if m.err == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	if t, ok := m.err.(Tracer); ok {
		return t.Trace()
	}
	return m.err.Error()
}
