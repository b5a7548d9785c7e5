package cat

import "math"

// Fixed-width ASCII numeric fields used throughout the CAT protocol.

// DigitsToUint parses exactly width ASCII digits, most significant first.
func DigitsToUint(buf []byte, width int) (uint64, error) {
	if len(buf) != width {
		return 0, newError(LengthMismatch, "digits", "got %d bytes, want %d", len(buf), width)
	}
	var result uint64
	for i, b := range buf {
		if b < '0' || b > '9' {
			return 0, newError(InvalidDigit, "digits", "byte %q at offset %d", b, i)
		}
		d := uint64(b - '0')
		if result > (math.MaxUint64-d)/10 {
			return 0, newError(OutOfRange, "digits", "%q overflows uint64", buf)
		}
		result = result*10 + d
	}
	return result, nil
}

// SignedDigitsToInt parses a sign byte followed by digits ASCII digits.
// Only '-' makes the value negative; any other sign byte reads as positive.
func SignedDigitsToInt(buf []byte, digits int) (int64, error) {
	if len(buf) != digits+1 {
		return 0, newError(LengthMismatch, "signed digits", "got %d bytes, want %d", len(buf), digits+1)
	}
	magnitude, err := DigitsToUint(buf[1:], digits)
	if err != nil {
		return 0, err
	}
	negative := buf[0] == '-'
	switch {
	case magnitude <= math.MaxInt64:
	case negative && magnitude == math.MaxInt64+1:
		return math.MinInt64, nil
	default:
		return 0, newError(OutOfRange, "signed digits", "%q overflows int64", buf)
	}
	value := int64(magnitude)
	if negative {
		value = -value
	}
	return value, nil
}

// ParseUint3 parses a 3-digit field into a byte-sized value (000-255).
func ParseUint3(buf []byte) (uint8, error) {
	v, err := DigitsToUint(buf, 3)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, newError(OutOfRange, "uint3", "%d exceeds %d", v, math.MaxUint8)
	}
	return uint8(v), nil
}

// ParseUint4 parses a 4-digit field.
func ParseUint4(buf []byte) (uint16, error) {
	v, err := DigitsToUint(buf, 4)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// ParseUint9 parses a 9-digit field.
func ParseUint9(buf []byte) (uint32, error) {
	v, err := DigitsToUint(buf, 9)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// ParseInt4 parses a sign byte plus 4 digits (5 bytes total).
func ParseInt4(buf []byte) (int16, error) {
	v, err := SignedDigitsToInt(buf, 4)
	if err != nil {
		return 0, err
	}
	return int16(v), nil
}

// ParseInt5 parses a sign byte plus 5 digits (6 bytes total) and rejects
// results that do not fit in an int16.
func ParseInt5(buf []byte) (int16, error) {
	v, err := SignedDigitsToInt(buf, 5)
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, newError(OutOfRange, "int5", "%d overflows int16", v)
	}
	return int16(v), nil
}

// FormatUint3 renders n as three ASCII digits by hundreds/tens/units extraction.
func FormatUint3(n uint8) [3]byte {
	var buf [3]byte
	buf[0] = n/100 + '0'
	n %= 100
	buf[1] = n/10 + '0'
	buf[2] = n%10 + '0'
	return buf
}
