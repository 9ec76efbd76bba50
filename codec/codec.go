// Package codec turns Go values into payloads for itemcache.Typed.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Format tells itemcache.Typed which Item variant carries a payload.
type Format uint8

const (
	FormatBinary Format = iota // stored as itemcache.Binary (base64)
	FormatText                 // stored as itemcache.String; payload must be UTF-8
	FormatJSON                 // stored as itemcache.JSON; payload must be valid JSON
)

// Formatter is implemented by codecs whose output is not opaque bytes.
// Codecs without it are FormatBinary.
type Formatter interface {
	Format() Format
}

// FormatOf reports the Format of c.
func FormatOf(c any) Format {
	if f, ok := c.(Formatter); ok {
		return f.Format()
	}
	return FormatBinary
}
