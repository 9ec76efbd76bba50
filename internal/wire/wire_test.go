package wire

import (
	"encoding/json"
	"errors"
	"testing"
)

func mustUnmarshal(t *testing.T, b []byte) Envelope {
	t.Helper()
	e, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	return e
}

func TestRoundTripWithAndWithoutExpiration(t *testing.T) {
	exp := int64(1700000000123)
	cases := []Envelope{
		{Info: Info{Type: "string"}, Value: json.RawMessage(`"hello"`)},
		{Info: Info{Type: "binary", Expiration: &exp}, Value: json.RawMessage(`"AAEC"`)},
		{Info: Info{Type: "json"}, Value: json.RawMessage(`{"a":[1,2,3]}`)},
	}
	for _, tc := range cases {
		b, err := Marshal(tc)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		got := mustUnmarshal(t, b)
		if got.Info.Type != tc.Info.Type {
			t.Fatalf("type mismatch: got %q want %q", got.Info.Type, tc.Info.Type)
		}
		if (got.Info.Expiration == nil) != (tc.Info.Expiration == nil) {
			t.Fatalf("expiration presence mismatch: got %v want %v", got.Info.Expiration, tc.Info.Expiration)
		}
		if tc.Info.Expiration != nil && *got.Info.Expiration != *tc.Info.Expiration {
			t.Fatalf("expiration mismatch: got %d want %d", *got.Info.Expiration, *tc.Info.Expiration)
		}
		if string(got.Value) != string(tc.Value) {
			t.Fatalf("value mismatch: got %s want %s", got.Value, tc.Value)
		}
	}
}

func TestMarshalLayout(t *testing.T) {
	exp := int64(42)
	b, err := Marshal(Envelope{Info: Info{Type: "string", Expiration: &exp}, Value: json.RawMessage(`"v"`)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"info":{"type":"string","expiration":42},"value":"v"}`
	if string(b) != want {
		t.Fatalf("layout: got %s want %s", b, want)
	}

	b, err = Marshal(Envelope{Info: Info{Type: "string"}, Value: json.RawMessage(`"v"`)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if want := `{"info":{"type":"string"},"value":"v"}`; string(b) != want {
		t.Fatalf("expiration must be omitted when absent: got %s", b)
	}
}

func TestMarshalRejectsEmptyValue(t *testing.T) {
	if _, err := Marshal(Envelope{Info: Info{Type: "string"}}); err == nil {
		t.Fatalf("expected error on empty value")
	}
}

func TestUnmarshalCorrupt(t *testing.T) {
	cases := []string{
		``,
		`   `,
		`not json`,
		`"just a string"`,
		`[1,2]`,
		`{"info":`,
		`{"value":"x"}`,
		`{"info":{"type":"string"}}`,
		`{"info":"string","value":"x"}`,
	}
	for _, in := range cases {
		if _, err := Unmarshal([]byte(in)); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("input %q: expected ErrCorrupt, got %v", in, err)
		}
	}
}

func TestUnmarshalAcceptsNullValueAndMissingType(t *testing.T) {
	e := mustUnmarshal(t, []byte(`{"info":{},"value":null}`))
	if e.Info.Type != "" {
		t.Fatalf("expected empty type, got %q", e.Info.Type)
	}
	if string(e.Value) != "null" {
		t.Fatalf("expected null value, got %s", e.Value)
	}
}
