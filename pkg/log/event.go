package log

import "time"

// Event represents a codec or editing event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the editing session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates data flow relative to the in-memory block.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Schema of the top-level block (e.g. "meta").
	Schema string `cbor:"6,keyasint,omitempty"`

	// File is the .bin path involved, if any.
	File string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Framing layer
	Record      *RecordEvent      `cbor:"11,keyasint,omitempty"` // Record layer
	Field       *FieldEvent       `cbor:"12,keyasint,omitempty"` // Field edits
	StateChange *StateChangeEvent `cbor:"13,keyasint,omitempty"` // Block/session state
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn indicates octets decoded into a block.
	DirectionIn Direction = 0
	// DirectionOut indicates a block encoded to octets.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerFrame is the storage framing layer (length prefix and checksum).
	LayerFrame Layer = 0
	// LayerRecord is the TLV record layer.
	LayerRecord Layer = 1
	// LayerField is the typed field layer.
	LayerField Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerFrame:
		return "FRAME"
	case LayerRecord:
		return "RECORD"
	case LayerField:
		return "FIELD"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer resolves a layer name as printed by String.
func ParseLayer(name string) (Layer, bool) {
	for _, l := range []Layer{LayerFrame, LayerRecord, LayerField} {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCodec indicates data being encoded or decoded.
	CategoryCodec Category = 0
	// CategoryEdit indicates a user change to a field.
	CategoryEdit Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCodec:
		return "CODEC"
	case CategoryEdit:
		return "EDIT"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory resolves a category name as printed by String.
func ParseCategory(name string) (Category, bool) {
	for _, c := range []Category{CategoryCodec, CategoryEdit, CategoryState, CategoryError} {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// MaxFrameData is the number of frame octets kept in a FrameEvent.
const MaxFrameData = 256

// FrameEvent captures a framed buffer at the storage layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including length prefix and checksum).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`

	// Checksum is the checksum carried by the frame.
	Checksum uint16 `cbor:"4,keyasint"`
}

// NewFrameEvent captures frame, keeping at most MaxFrameData octets.
func NewFrameEvent(frame []byte, checksum uint16) *FrameEvent {
	ev := &FrameEvent{Size: len(frame), Checksum: checksum}
	if len(frame) > MaxFrameData {
		ev.Data = append([]byte(nil), frame[:MaxFrameData]...)
		ev.Truncated = true
	} else {
		ev.Data = append([]byte(nil), frame...)
	}
	return ev
}

// RecordEvent captures one TLV record.
type RecordEvent struct {
	// Path names the block holding the record, e.g. "ChannelTEDS/PhyUnits".
	Path string `cbor:"1,keyasint"`

	// Type is the record's type tag.
	Type uint8 `cbor:"2,keyasint"`

	// Length is the record's declared value length.
	Length uint8 `cbor:"3,keyasint"`

	// Known is false for records no field claimed.
	Known bool `cbor:"4,keyasint"`
}

// FieldEvent captures a change to one field.
type FieldEvent struct {
	// Path names the field, e.g. "ChannelTEDS/PhyUnits/Meters".
	Path string `cbor:"1,keyasint"`

	// Tag is the field's type tag.
	Tag uint8 `cbor:"2,keyasint"`

	// OldValue is the display form of the previous value.
	OldValue string `cbor:"3,keyasint,omitempty"`

	// NewValue is the display form of the new value.
	NewValue string `cbor:"4,keyasint,omitempty"`

	// Included reports whether the field is part of the encoding after the change.
	Included bool `cbor:"5,keyasint"`
}

// StateChangeEvent captures block and session lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityBlock indicates a block population state change.
	StateEntityBlock StateEntity = 0
	// StateEntitySession indicates a session state change.
	StateEntitySession StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityBlock:
		return "BLOCK"
	case StateEntitySession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
