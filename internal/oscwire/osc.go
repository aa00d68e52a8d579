// Package oscwire implements the OSC 1.0 wire format used by VMC: strings
// are NUL-terminated and padded to a 4-byte boundary, numeric arguments are
// big-endian, and a bundle is a "#bundle" tag, an 8-byte time tag, and a
// sequence of length-prefixed inner packets.
package oscwire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Packet is either a Message or a Bundle.
type Packet interface {
	isPacket()
}

// Message is a single OSC address plus its typed argument list. Supported
// argument types: int32, int64, float32, float64, string.
type Message struct {
	Address string
	Args    []interface{}
}

func (Message) isPacket() {}

// Bundle groups packets under a shared time tag (NTP-style 64-bit
// seconds-since-epoch/fraction pair; VMC always sends (0, 0)).
type Bundle struct {
	TimeTag  uint64
	Packets  []Packet
}

func (Bundle) isPacket() {}

// AppendString appends s, NUL-terminated and zero-padded to a 4-byte
// boundary.
func AppendString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	buf = append(buf, 0)
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// AppendInt32 appends v as a big-endian int32.
func AppendInt32(buf []byte, v int32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	return append(buf, b[:]...)
}

// AppendInt64 appends v as a big-endian int64.
func AppendInt64(buf []byte, v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return append(buf, b[:]...)
}

// AppendFloat32 appends v as a big-endian IEEE-754 float32.
func AppendFloat32(buf []byte, v float32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(v))
	return append(buf, b[:]...)
}

// AppendFloat64 appends v as a big-endian IEEE-754 float64.
func AppendFloat64(buf []byte, v float64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	return append(buf, b[:]...)
}

// EncodeMessage appends addr and args (typed as above) to buf in OSC wire
// format.
func EncodeMessage(buf []byte, addr string, args []interface{}) ([]byte, error) {
	buf = AppendString(buf, addr)

	tags := make([]byte, 0, len(args)+1)
	tags = append(tags, ',')
	for _, arg := range args {
		switch arg.(type) {
		case int32:
			tags = append(tags, 'i')
		case int64:
			tags = append(tags, 'h')
		case float32:
			tags = append(tags, 'f')
		case float64:
			tags = append(tags, 'd')
		case string:
			tags = append(tags, 's')
		default:
			return nil, fmt.Errorf("oscwire: unsupported argument type %T", arg)
		}
	}
	buf = AppendString(buf, string(tags))

	for _, arg := range args {
		switch v := arg.(type) {
		case int32:
			buf = AppendInt32(buf, v)
		case int64:
			buf = AppendInt64(buf, v)
		case float32:
			buf = AppendFloat32(buf, v)
		case float64:
			buf = AppendFloat64(buf, v)
		case string:
			buf = AppendString(buf, v)
		}
	}

	return buf, nil
}

// EncodeBundle appends a #bundle packet containing the encoded form of each
// inner packet, each prefixed by its length as a big-endian int32.
func EncodeBundle(buf []byte, timeTag uint64, packets []Packet) ([]byte, error) {
	buf = AppendString(buf, "#bundle")

	var tb [8]byte
	binary.BigEndian.PutUint64(tb[:], timeTag)
	buf = append(buf, tb[:]...)

	for _, p := range packets {
		lenPos := len(buf)
		buf = append(buf, 0, 0, 0, 0)

		var err error
		buf, err = EncodePacket(buf, p)
		if err != nil {
			return nil, err
		}

		size := len(buf) - lenPos - 4
		binary.BigEndian.PutUint32(buf[lenPos:lenPos+4], uint32(size))
	}

	return buf, nil
}

// EncodePacket encodes p (Message or Bundle) and appends it to buf.
func EncodePacket(buf []byte, p Packet) ([]byte, error) {
	switch v := p.(type) {
	case Message:
		return EncodeMessage(buf, v.Address, v.Args)
	case Bundle:
		return EncodeBundle(buf, v.TimeTag, v.Packets)
	default:
		return nil, fmt.Errorf("oscwire: unknown packet type %T", p)
	}
}
