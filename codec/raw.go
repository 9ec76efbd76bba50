package codec

// Bytes is an identity codec for []byte values, stored as itemcache.Binary.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String stores Go strings as itemcache.String items.
// By convention this assumes UTF-8 and performs no validation.
type String struct{}

func (String) Format() Format { return FormatText }

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
