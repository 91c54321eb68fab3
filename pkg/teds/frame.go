package teds

import (
	"encoding/binary"
	"fmt"
)

// Framing sizes for standalone TEDS storage.
const (
	FrameLengthSize = 4
	ChecksumSize    = 2
	FrameOverhead   = FrameLengthSize + ChecksumSize
)

// Checksum returns 0xFFFF minus the sum of payload octets modulo 0xFFFF.
func Checksum(payload []byte) uint16 {
	var sum uint64
	for _, b := range payload {
		sum += uint64(b)
	}
	return uint16(0xFFFF - sum%0xFFFF)
}

// Frame wraps payload as [u32 len(payload)+2][payload][u16 checksum].
func Frame(payload []byte) []byte {
	out := make([]byte, 0, len(payload)+FrameOverhead)
	out = binary.BigEndian.AppendUint32(out, uint32(len(payload)+ChecksumSize))
	out = append(out, payload...)
	return binary.BigEndian.AppendUint16(out, Checksum(payload))
}

// Unframe validates the length prefix and checksum of a framed buffer and
// returns its payload. Frames whose checksum also covers the length prefix,
// as written by older editors, are accepted too.
func Unframe(buf []byte) ([]byte, error) {
	if len(buf) < FrameOverhead {
		return nil, fmt.Errorf("%w: %d octets, need at least %d", ErrFrameLength, len(buf), FrameOverhead)
	}
	total := binary.BigEndian.Uint32(buf)
	if uint64(total) != uint64(len(buf)-FrameLengthSize) {
		return nil, fmt.Errorf("%w: header declares %d octets, %d follow",
			ErrFrameLength, total, len(buf)-FrameLengthSize)
	}
	payload := buf[FrameLengthSize : len(buf)-ChecksumSize]
	want := binary.BigEndian.Uint16(buf[len(buf)-ChecksumSize:])
	got := Checksum(payload)
	if got != want && Checksum(buf[:len(buf)-ChecksumSize]) != want {
		return nil, fmt.Errorf("%w: computed 0x%04x, stored 0x%04x", ErrChecksumMismatch, got, want)
	}
	return payload, nil
}

// EncodeFramed returns the framed encoding used for .bin storage.
func (b *Block) EncodeFramed() ([]byte, error) {
	payload, err := b.EncodeAll()
	if err != nil {
		return nil, err
	}
	return Frame(payload), nil
}

// DecodeFramed verifies the frame and decodes its payload into b.
func (b *Block) DecodeFramed(buf []byte, policy DecodePolicy) (DecodeReport, error) {
	payload, err := Unframe(buf)
	if err != nil {
		return DecodeReport{}, err
	}
	return b.Decode(payload, policy)
}
