package prefixsum

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	testUints := []uint64{0, 10, 100, 1000, 10000, 65535, 2147483647, 1<<63 + 5, ^uint64(0)}
	buf := new(bytes.Buffer)

	for _, i := range testUints {
		encodeUint(buf, i)
	}

	readBuf := bytes.NewReader(buf.Bytes())
	for _, i := range testUints {
		j, err := decodeUint(readBuf)

		if err != nil || i != j {
			t.Errorf("Basic encode/decode failed. Got %d (%v), wanted %d", j, err, i)
		}
	}
}

func TestZigzag(t *testing.T) {
	for _, x := range []int64{0, -1, 1, -64, 63, -1 << 63, 1<<63 - 1} {
		if unzigzag(zigzag(x)) != x {
			t.Errorf("zigzag(%d) doesn't invert", x)
		}
	}
	if zigzag(-1) != 1 || zigzag(1) != 2 {
		t.Errorf("Small magnitudes should map to small codes")
	}
}

func TestSerialization(t *testing.T) {
	sums := PrefixSum([]int64{5, -3, 1 << 40, 0, -(1 << 62), 7})

	serialized, err := AsBytes(sums)
	if err != nil {
		t.Fatalf("AsBytes() failed: %s", err)
	}

	decoded, err := FromBytes(bytes.NewReader(serialized))
	if err != nil {
		t.Fatalf("FromBytes() failed: %s", err)
	}
	assertSlicesEqual(t, decoded, sums)
}

func TestSerializedPrefixSumsAreSmall(t *testing.T) {
	ones := make([]int64, 1000)
	for i := range ones {
		ones[i] = 1
	}
	serialized, _ := AsBytes(PrefixSum(ones))

	// 4 byte version + 8 byte count + one byte per delta
	if len(serialized) != 12+1024 {
		t.Errorf("Expected deltas of running sums to take one byte each, got %d bytes", len(serialized))
	}
}

func TestBadPayloads(t *testing.T) {
	good, _ := AsBytes([]int64{1, 2, 300})

	bad := append([]byte{}, good...)
	bad[3] = 9
	if _, err := FromBytes(bytes.NewReader(bad)); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Expected ErrUnsupportedEncoding, got %v", err)
	}

	if _, err := FromBytes(bytes.NewReader(good[:len(good)-1])); err == nil {
		t.Errorf("Expected an error for a truncated payload")
	}

	if _, err := FromBytes(bytes.NewReader(nil)); err == nil {
		t.Errorf("Expected an error for an empty payload")
	}
}
