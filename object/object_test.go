package object_test

import (
	"testing"

	"github.com/bitmark-inc/nodestore/hash"
	"github.com/bitmark-inc/nodestore/object"
)

func TestTypeCharRoundTrip(t *testing.T) {
	types := []object.Type{object.Unknown, object.Ledger, object.Transaction, object.AccountNode, object.TransactionNode}
	for _, ty := range types {
		c := ty.Char()
		back, ok := object.TypeFromChar(c)
		if !ok {
			t.Fatalf("TypeFromChar(%q) reported not found", c)
		}
		if back != ty {
			t.Errorf("round trip: %v -> %q -> %v", ty, c, back)
		}
	}
}

func TestTypeFromCharUnrecognized(t *testing.T) {
	if _, ok := object.TypeFromChar('?'); ok {
		t.Errorf("expected unrecognized type char to report not found")
	}
}

func TestRecordEqual(t *testing.T) {
	payload := []byte{0xaa, 0xbb}
	h := hash.Of(payload)

	a := object.New(object.Ledger, 42, payload, h)
	b := object.New(object.Ledger, 42, append([]byte{}, payload...), h)

	if !a.Equal(b) {
		t.Errorf("expected equal records")
	}

	c := object.New(object.Transaction, 42, payload, h)
	if a.Equal(c) {
		t.Errorf("expected unequal records for differing type")
	}
}
