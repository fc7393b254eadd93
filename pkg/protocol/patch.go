package protocol

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/luma-dev/luma/pkg/dom"
)

// Patch payload errors.
var (
	ErrUnknownMutationOp = errors.New("protocol: unknown mutation op")
	ErrUnknownValueTag   = errors.New("protocol: unknown value tag")
)

// Value tags used inside Patches payloads. Listener functions never cross
// the wire; a mutation that attaches a listener only carries the event name.
const (
	valNil    = 0x00
	valString = 0x01
	valBool   = 0x02
	valInt    = 0x03
	valFloat  = 0x04
)

// EncodePatches encodes a batch of live-tree mutations into a Patches frame.
func EncodePatches(muts []dom.Mutation) (*Frame, error) {
	enc := NewEncoder()
	enc.WriteUvarint(uint64(len(muts)))
	for _, m := range muts {
		enc.WriteByte(byte(m.Op))
		enc.WriteString(m.Target)
		switch m.Op {
		case dom.MutCreateElement:
			enc.WriteString(m.Name)
		case dom.MutCreateText:
			if err := encodeValue(enc, m.Value); err != nil {
				return nil, err
			}
		case dom.MutSetField:
			enc.WriteString(m.Name)
			if err := encodeValue(enc, m.Value); err != nil {
				return nil, err
			}
		case dom.MutRemoveField, dom.MutAddListener:
			enc.WriteString(m.Name)
		case dom.MutAppend, dom.MutRemove:
			enc.WriteString(m.Child)
		case dom.MutInsert, dom.MutReplace:
			enc.WriteString(m.Child)
			enc.WriteString(m.Ref)
		case dom.MutClear:
			// Target only.
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownMutationOp, m.Op)
		}
	}
	if enc.Len() > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	return NewFrame(FramePatches, enc.Bytes()), nil
}

// DecodePatches decodes a Patches frame payload back into mutations.
func DecodePatches(payload []byte) ([]dom.Mutation, error) {
	dec := NewDecoder(payload)
	count, err := dec.ReadUvarint()
	if err != nil {
		return nil, err
	}
	muts := make([]dom.Mutation, 0, count)
	for i := uint64(0); i < count; i++ {
		opByte, err := dec.ReadByte()
		if err != nil {
			return nil, err
		}
		m := dom.Mutation{Op: dom.MutOp(opByte)}
		if m.Target, err = dec.ReadString(); err != nil {
			return nil, err
		}
		switch m.Op {
		case dom.MutCreateElement:
			if m.Name, err = dec.ReadString(); err != nil {
				return nil, err
			}
		case dom.MutCreateText:
			if m.Value, err = decodeValue(dec); err != nil {
				return nil, err
			}
		case dom.MutSetField:
			if m.Name, err = dec.ReadString(); err != nil {
				return nil, err
			}
			if m.Value, err = decodeValue(dec); err != nil {
				return nil, err
			}
		case dom.MutRemoveField, dom.MutAddListener:
			if m.Name, err = dec.ReadString(); err != nil {
				return nil, err
			}
		case dom.MutAppend, dom.MutRemove:
			if m.Child, err = dec.ReadString(); err != nil {
				return nil, err
			}
		case dom.MutInsert, dom.MutReplace:
			if m.Child, err = dec.ReadString(); err != nil {
				return nil, err
			}
			if m.Ref, err = dec.ReadString(); err != nil {
				return nil, err
			}
		case dom.MutClear:
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownMutationOp, opByte)
		}
		muts = append(muts, m)
	}
	return muts, nil
}

func encodeValue(enc *Encoder, v any) error {
	switch x := v.(type) {
	case nil:
		enc.WriteByte(valNil)
	case string:
		enc.WriteByte(valString)
		enc.WriteString(x)
	case bool:
		enc.WriteByte(valBool)
		enc.WriteBool(x)
	case int:
		enc.WriteByte(valInt)
		enc.WriteSvarint(int64(x))
	case int64:
		enc.WriteByte(valInt)
		enc.WriteSvarint(x)
	case float64:
		enc.WriteByte(valFloat)
		enc.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		enc.WriteByte(valString)
		enc.WriteString(fmt.Sprint(x))
	}
	return nil
}

func decodeValue(dec *Decoder) (any, error) {
	tag, err := dec.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case valNil:
		return nil, nil
	case valString:
		return dec.ReadString()
	case valBool:
		return dec.ReadBool()
	case valInt:
		return dec.ReadSvarint()
	case valFloat:
		s, err := dec.ReadString()
		if err != nil {
			return nil, err
		}
		return strconv.ParseFloat(s, 64)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownValueTag, tag)
	}
}
