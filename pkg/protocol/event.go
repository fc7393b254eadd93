package protocol

// Event is a client-originated interaction: the live ID of the node the
// interaction targeted, the event name ("click", "input", ...), and an
// optional value such as the current contents of an input field.
type Event struct {
	Target string
	Name   string
	Value  string
}

// EncodeEvent encodes an event into an Event frame.
func EncodeEvent(ev Event) (*Frame, error) {
	enc := NewEncoder()
	enc.WriteString(ev.Target)
	enc.WriteString(ev.Name)
	enc.WriteString(ev.Value)
	if enc.Len() > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	return NewFrame(FrameEvent, enc.Bytes()), nil
}

// DecodeEvent decodes an Event frame payload.
func DecodeEvent(payload []byte) (Event, error) {
	dec := NewDecoder(payload)
	var ev Event
	var err error
	if ev.Target, err = dec.ReadString(); err != nil {
		return Event{}, err
	}
	if ev.Name, err = dec.ReadString(); err != nil {
		return Event{}, err
	}
	if ev.Value, err = dec.ReadString(); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// EncodeError encodes a server-side error message into an Error frame.
func EncodeError(msg string) *Frame {
	enc := NewEncoder()
	enc.WriteString(msg)
	return NewFrame(FrameError, enc.Bytes())
}

// DecodeError decodes an Error frame payload.
func DecodeError(payload []byte) (string, error) {
	return NewDecoder(payload).ReadString()
}
