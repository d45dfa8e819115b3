package cart

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCodecRoundTrip(t *testing.T) {
	want := Cart{Items: []Line{
		{ItemID: "item-1", Name: "Margherita", Price: 10, Quantity: 2},
		{ItemID: "item-2", Name: "Cola", Price: 3, Quantity: 1},
	}}

	got := Decode(Encode(want), nil)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCodecEmptyRoundTrip(t *testing.T) {
	got := Decode(Encode(Cart{}), nil)
	if !got.Empty() {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	malformed := []string{
		"",
		"!!!not-base64!!!",
		"eyJub3QiOiJ2YWxpZA", // base64 of truncated json
		"{\"items\":",
		"%ZZ%%",
	}

	for _, raw := range malformed {
		got := Decode(raw, nil)
		if !got.Empty() {
			t.Fatalf("input %q: expected empty cart, got %+v", raw, got)
		}
	}
}

func TestDecodeURLEscapedFallback(t *testing.T) {
	want := Cart{Items: []Line{{ItemID: "item-1", Name: "Margherita", Price: 10, Quantity: 1}}}

	// A client that URL-escaped the already cookie-safe value must still
	// be readable through the fallback parse.
	escaped := url.QueryEscape(Encode(want))

	got := Decode(escaped, nil)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("escaped value mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLegacyPlainJSON(t *testing.T) {
	raw := `{"items":[{"itemId":"item-1","name":"Cola","price":3,"quantity":2}]}`
	want := Cart{Items: []Line{{ItemID: "item-1", Name: "Cola", Price: 3, Quantity: 2}}}

	got := Decode(raw, nil)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legacy value mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSanitizes(t *testing.T) {
	// Duplicated ids merge and non-positive quantities are dropped, so a
	// hand-crafted cookie cannot break the cart invariants.
	raw := `{"items":[
		{"itemId":"item-1","name":"Cola","price":3,"quantity":1},
		{"itemId":"item-1","name":"Cola","price":3,"quantity":2},
		{"itemId":"item-2","name":"Water","price":1,"quantity":0},
		{"itemId":"","name":"ghost","price":5,"quantity":1}
	]}`

	want := Cart{Items: []Line{{ItemID: "item-1", Name: "Cola", Price: 3, Quantity: 3}}}

	got := Decode(raw, nil)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sanitized value mismatch (-want +got):\n%s", diff)
	}
}
