package prefixsum

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const deltaEncoding int32 = 1

// ErrUnsupportedEncoding is returned by FromBytes for payloads written
// with an unknown encoding version.
var ErrUnsupportedEncoding = errors.New("unsupported encoding version")

// AsBytes serializes a sequence. The payload is a big-endian header
// (encoding version, element count) followed by the differences
// between consecutive elements as zig-zag varints, so a slice of
// prefix sums costs about as much as the input it was computed from.
func AsBytes(xs []int64) ([]byte, error) {
	buffer := new(bytes.Buffer)

	if err := binary.Write(buffer, binary.BigEndian, deltaEncoding); err != nil {
		return nil, err
	}
	if err := binary.Write(buffer, binary.BigEndian, int64(len(xs))); err != nil {
		return nil, err
	}

	var prev int64
	for _, x := range xs {
		encodeUint(buffer, zigzag(x-prev))
		prev = x
	}

	return buffer.Bytes(), nil
}

// FromBytes reads a sequence written by AsBytes.
func FromBytes(buf *bytes.Reader) ([]int64, error) {
	var encoding int32
	if err := binary.Read(buf, binary.BigEndian, &encoding); err != nil {
		return nil, err
	}
	if encoding != deltaEncoding {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedEncoding, encoding)
	}

	var count int64
	if err := binary.Read(buf, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	// every element takes at least one byte
	if count < 0 || count > int64(buf.Len()) {
		return nil, fmt.Errorf("invalid element count: %d", count)
	}

	xs := make([]int64, count)
	var prev int64
	for i := range xs {
		u, err := decodeUint(buf)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		prev += unzigzag(u)
		xs[i] = prev
	}

	return xs, nil
}

func zigzag(x int64) uint64 {
	return uint64(x<<1) ^ uint64(x>>63)
}

func unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func encodeUint(buf *bytes.Buffer, n uint64) {
	for n > 0x7f {
		buf.WriteByte(byte(0x80 | (0x7f & n)))
		n >>= 7
	}
	buf.WriteByte(byte(n))
}

func decodeUint(buf *bytes.Reader) (uint64, error) {
	v, err := buf.ReadByte()
	if err != nil {
		return 0, err
	}
	z := 0x7f & uint64(v)
	var shift uint = 7
	for v&0x80 != 0 {
		if shift > 63 {
			return 0, errors.New("varint overflows 64 bits")
		}
		v, err = buf.ReadByte()
		if err != nil {
			return 0, err
		}
		z |= uint64(v&0x7f) << shift
		shift += 7
	}
	return z, nil
}
