package v1

import (
	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"google.golang.org/grpc/encoding"
)

// codecName is the gRPC content-subtype the blog service messages travel
// under ("application/grpc+json").
const codecName = "json"

// jsonCodec carries plain Go messages over gRPC using the same JSON
// marshaler the REST gateway serves with.
type jsonCodec struct {
	marshaler runtime.JSONBuiltin
}

func (c jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return c.marshaler.Marshal(v)
}

func (c jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return c.marshaler.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
