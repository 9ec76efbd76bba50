package itemcache

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func itemsEqual(a, b Item) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Binary:
		bv, ok := b.(Binary)
		return ok && bytes.Equal(av, bv)
	case JSON:
		bv, ok := b.(JSON)
		return ok && bytes.Equal(av, bv)
	}
	return false
}

func sampleItems(t *testing.T) []Item {
	t.Helper()
	structured, err := NewJSON(map[string]any{"id": "1", "tags": []string{"a", "b"}, "n": 3})
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}
	return []Item{
		String(""),
		String("hello, 世界"),
		String(`with "quotes" and \ slashes`),
		Binary{},
		Binary{0x00, 0xff, 0x10, 0x80},
		Binary("plain ascii"),
		structured,
		JSON(`"a bare string"`),
		JSON(`[1,2.5,null,true]`),
		JSON(`null`),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, it := range sampleItems(t) {
		payload, err := EncodeItem(it)
		if err != nil {
			t.Fatalf("EncodeItem(%#v): %v", it, err)
		}
		got, err := DecodeItem(payload, it.Type())
		if err != nil {
			t.Fatalf("DecodeItem(%s, %s): %v", payload, it.Type(), err)
		}
		if !itemsEqual(got, it) {
			t.Fatalf("round trip mismatch: got %#v want %#v", got, it)
		}
	}
}

func TestTypeMatchesVariant(t *testing.T) {
	if got := String("x").Type(); got != TypeString {
		t.Fatalf("String tag = %q", got)
	}
	if got := Binary("x").Type(); got != TypeBinary {
		t.Fatalf("Binary tag = %q", got)
	}
	if got := JSON(`{}`).Type(); got != TypeJSON {
		t.Fatalf("JSON tag = %q", got)
	}
	for _, tt := range []Type{TypeString, TypeBinary, TypeJSON} {
		if !tt.valid() {
			t.Fatalf("%q should be valid", tt)
		}
	}
	if Type("blob").valid() || Type("").valid() {
		t.Fatalf("unknown tags must be invalid")
	}
}

func TestEncodeBinaryIsBase64String(t *testing.T) {
	payload, err := EncodeItem(Binary("hello"))
	if err != nil {
		t.Fatalf("EncodeItem: %v", err)
	}
	if string(payload) != `"aGVsbG8="` {
		t.Fatalf("got %s", payload)
	}
}

func TestEncodeRejectsInvalidJSONAndNil(t *testing.T) {
	if _, err := EncodeItem(JSON(`{"a":`)); err == nil {
		t.Fatalf("expected error for invalid JSON item")
	}
	if _, err := EncodeItem(nil); err == nil {
		t.Fatalf("expected error for nil item")
	}
	payload, err := EncodeItem(JSON(nil))
	if err != nil || string(payload) != "null" {
		t.Fatalf("empty JSON item should encode as null, got %s err %v", payload, err)
	}
}

func TestEncodeRejectsInvalidUTF8String(t *testing.T) {
	for _, s := range []string{"a\xffb", "\xfe", "ok\xc3"} {
		if _, err := EncodeItem(String(s)); !errors.Is(err, ErrInvalidUTF8) {
			t.Fatalf("EncodeItem(%q): expected ErrInvalidUTF8, got %v", s, err)
		}
	}
	if _, err := EncodeItem(String("héllo")); err != nil {
		t.Fatalf("valid UTF-8 rejected: %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		payload string
		t       Type
	}{
		{`123`, TypeString},
		{`null`, TypeString},
		{`{"a":1}`, TypeString},
		{`"not base64!!"`, TypeBinary},
		{`{"a":1}`, TypeBinary},
		{`null`, TypeBinary},
		{`{"a":`, TypeJSON},
		{`"x"`, Type("blob")},
		{`"x"`, Type("")},
	}
	for _, tc := range cases {
		_, err := DecodeItem(json.RawMessage(tc.payload), tc.t)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("DecodeItem(%s, %q): expected DecodeError, got %v", tc.payload, tc.t, err)
		}
		if de.Type != tc.t {
			t.Fatalf("DecodeError.Type = %q want %q", de.Type, tc.t)
		}
	}

	_, err := DecodeItem(json.RawMessage(`"x"`), Type("blob"))
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestDecodeJSONCopiesPayload(t *testing.T) {
	payload := json.RawMessage(`{"a":1}`)
	got, err := DecodeItem(payload, TypeJSON)
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	payload[2] = 'b'
	if string(got.(JSON)) != `{"a":1}` {
		t.Fatalf("decoded item aliases the payload buffer: %s", got.(JSON))
	}
}

func TestJSONItemUnmarshal(t *testing.T) {
	type user struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	j, err := NewJSON(user{ID: "1", Name: "Ada"})
	if err != nil {
		t.Fatalf("NewJSON: %v", err)
	}
	var got user
	if err := j.Unmarshal(&got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got != (user{ID: "1", Name: "Ada"}) {
		t.Fatalf("got %+v", got)
	}
	if _, err := NewJSON(make(chan int)); err == nil {
		t.Fatalf("expected marshal error for channel")
	}
}

func TestCalculateExpiration(t *testing.T) {
	if _, ok := CalculateExpiration(PutOptions{}); ok {
		t.Fatalf("zero options must mean no expiration")
	}
	at := time.UnixMilli(1700000000123)
	got, ok := CalculateExpiration(PutOptions{Expiration: at})
	if !ok || !got.Equal(at) {
		t.Fatalf("expiration must pass through verbatim: got %v ok=%v", got, ok)
	}
}

func TestTTLSecondsFloorsAndClamps(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	cases := []struct {
		exp  time.Time
		want int64
	}{
		{now.Add(10 * time.Second), 10},
		{now.Add(10*time.Second + 999*time.Millisecond), 10},
		{now.Add(999 * time.Millisecond), 0},
		{now, 0},
		{now.Add(-5 * time.Second), 0},
	}
	for _, tc := range cases {
		if got := ttlSeconds(tc.exp, now); got != tc.want {
			t.Fatalf("ttlSeconds(%v) = %d want %d", tc.exp.Sub(now), got, tc.want)
		}
	}
}
