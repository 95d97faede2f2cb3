package hash_test

import (
	"testing"

	"github.com/bitmark-inc/nodestore/hash"
)

func TestOfAndFromHex(t *testing.T) {
	data := []byte{0xaa, 0xbb}
	d := hash.Of(data)

	s := d.String()
	back, err := hash.FromHex(s)
	if nil != err {
		t.Fatalf("FromHex error: %v", err)
	}
	if back != d {
		t.Errorf("round trip mismatch: %#v expected %#v", back, d)
	}
}

func TestFromBytesWrongLength(t *testing.T) {
	if _, err := hash.FromBytes([]byte{1, 2, 3}); nil == err {
		t.Fatalf("expected error for short byte slice")
	}
}

func TestZero(t *testing.T) {
	var d hash.Digest
	if !d.IsZero() {
		t.Errorf("zero-value digest reports non-zero")
	}

	d = hash.Of([]byte{0x01})
	if d.IsZero() {
		t.Errorf("non-zero digest reports zero")
	}
}
