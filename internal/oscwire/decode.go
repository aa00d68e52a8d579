package oscwire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodePacket decodes a single top-level OSC packet (message or bundle)
// from data.
func DecodePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("oscwire: empty packet")
	}

	switch data[0] {
	case '#':
		return decodeBundle(data)
	case '/':
		return decodeMessage(data)
	default:
		return nil, fmt.Errorf("oscwire: packet does not start with '#' or '/'")
	}
}

func decodeBundle(data []byte) (Bundle, error) {
	tag, rest, err := readString(data)
	if err != nil {
		return Bundle{}, fmt.Errorf("oscwire: bundle tag: %w", err)
	}
	if tag != "#bundle" {
		return Bundle{}, fmt.Errorf("oscwire: expected #bundle tag, got %q", tag)
	}

	if len(rest) < 8 {
		return Bundle{}, fmt.Errorf("oscwire: bundle missing time tag")
	}
	timeTag := binary.BigEndian.Uint64(rest[:8])
	rest = rest[8:]

	var packets []Packet
	for len(rest) > 0 {
		if len(rest) < 4 {
			return Bundle{}, fmt.Errorf("oscwire: truncated bundle element length")
		}
		size := binary.BigEndian.Uint32(rest[:4])
		rest = rest[4:]

		if uint32(len(rest)) < size {
			return Bundle{}, fmt.Errorf("oscwire: truncated bundle element")
		}

		elem := rest[:size]
		rest = rest[size:]

		p, err := DecodePacket(elem)
		if err != nil {
			return Bundle{}, err
		}
		packets = append(packets, p)
	}

	return Bundle{TimeTag: timeTag, Packets: packets}, nil
}

func decodeMessage(data []byte) (Message, error) {
	addr, rest, err := readString(data)
	if err != nil {
		return Message{}, fmt.Errorf("oscwire: address: %w", err)
	}

	tagStr, rest, err := readString(rest)
	if err != nil {
		return Message{}, fmt.Errorf("oscwire: type tags: %w", err)
	}
	if len(tagStr) == 0 || tagStr[0] != ',' {
		return Message{}, fmt.Errorf("oscwire: type tag string must start with ','")
	}
	tags := tagStr[1:]

	args := make([]interface{}, 0, len(tags))
	for _, tag := range []byte(tags) {
		switch tag {
		case 'i':
			if len(rest) < 4 {
				return Message{}, fmt.Errorf("oscwire: truncated int32 argument")
			}
			args = append(args, int32(binary.BigEndian.Uint32(rest[:4])))
			rest = rest[4:]

		case 'h':
			if len(rest) < 8 {
				return Message{}, fmt.Errorf("oscwire: truncated int64 argument")
			}
			args = append(args, int64(binary.BigEndian.Uint64(rest[:8])))
			rest = rest[8:]

		case 'f':
			if len(rest) < 4 {
				return Message{}, fmt.Errorf("oscwire: truncated float32 argument")
			}
			args = append(args, math.Float32frombits(binary.BigEndian.Uint32(rest[:4])))
			rest = rest[4:]

		case 'd':
			if len(rest) < 8 {
				return Message{}, fmt.Errorf("oscwire: truncated float64 argument")
			}
			args = append(args, math.Float64frombits(binary.BigEndian.Uint64(rest[:8])))
			rest = rest[8:]

		case 's':
			var s string
			s, rest, err = readString(rest)
			if err != nil {
				return Message{}, fmt.Errorf("oscwire: string argument: %w", err)
			}
			args = append(args, s)

		default:
			return Message{}, fmt.Errorf("oscwire: unsupported type tag %q", tag)
		}
	}

	return Message{Address: addr, Args: args}, nil
}

// readString reads a NUL-terminated, 4-byte-padded string from the front
// of data, returning the string and the remaining bytes.
func readString(data []byte) (string, []byte, error) {
	i := 0
	for i < len(data) && data[i] != 0 {
		i++
	}
	if i == len(data) {
		return "", nil, fmt.Errorf("unterminated string")
	}

	s := string(data[:i])

	total := i + 1
	for total%4 != 0 {
		total++
	}
	if total > len(data) {
		return "", nil, fmt.Errorf("truncated string padding")
	}

	return s, data[total:], nil
}

// ArgInt32 reads args[i] as an int32, accepting int64 if it fits.
func ArgInt32(args []interface{}, i int) (int32, error) {
	if i < 0 || i >= len(args) {
		return 0, fmt.Errorf("oscwire: argument index %d out of range", i)
	}
	switch v := args[i].(type) {
	case int32:
		return v, nil
	case int64:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, fmt.Errorf("oscwire: int64 argument %d out of int32 range", v)
		}
		return int32(v), nil
	default:
		return 0, fmt.Errorf("oscwire: argument %d is %T, not an integer", i, args[i])
	}
}

// ArgFloat32 reads args[i] as a float32, accepting float64.
func ArgFloat32(args []interface{}, i int) (float32, error) {
	if i < 0 || i >= len(args) {
		return 0, fmt.Errorf("oscwire: argument index %d out of range", i)
	}
	switch v := args[i].(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	default:
		return 0, fmt.Errorf("oscwire: argument %d is %T, not a float", i, args[i])
	}
}

// ArgString reads args[i] as a string.
func ArgString(args []interface{}, i int) (string, error) {
	if i < 0 || i >= len(args) {
		return "", fmt.Errorf("oscwire: argument index %d out of range", i)
	}
	v, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("oscwire: argument %d is %T, not a string", i, args[i])
	}
	return v, nil
}
