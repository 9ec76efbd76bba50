package codec

import (
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Protobuf stores proto messages. By default the wire encoding goes into
// itemcache.Binary items; with AsJSON the protojson rendering is stored as
// an itemcache.JSON item other envelope readers can inspect.
type Protobuf[T proto.Message] struct {
	new    func() T // e.g. func() *pb.User { return &pb.User{} }
	asJSON bool
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

// AsJSON returns a copy that encodes with protojson.
func (c Protobuf[T]) AsJSON() Protobuf[T] {
	c.asJSON = true
	return c
}

func (c Protobuf[T]) Format() Format {
	if c.asJSON {
		return FormatJSON
	}
	return FormatBinary
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	if c.asJSON {
		return protojson.Marshal(v)
	}
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	var err error
	if c.asJSON {
		err = protojson.UnmarshalOptions{DiscardUnknown: true}.Unmarshal(b, m)
	} else {
		err = proto.Unmarshal(b, m)
	}
	return m, err
}
