// Package codec is the deterministic CBOR encoding shared by the audit hash chain,
// the audit archive and the gRPC wire codec.
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Name is the gRPC content-subtype under which the codec is registered.
const Name = "cbor"

// encMode uses Core Deterministic Encoding: the same value always produces the same bytes.
var encMode cbor.EncMode

// decMode ignores unknown fields so older clients keep working.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: 1 << 20,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// GRPC implements google.golang.org/grpc/encoding.Codec.
type GRPC struct{}

func (GRPC) Marshal(v any) ([]byte, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal %T: %w", v, err)
	}
	return b, nil
}

func (GRPC) Unmarshal(data []byte, v any) error {
	if err := Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor unmarshal %T: %w", v, err)
	}
	return nil
}

func (GRPC) Name() string {
	return Name
}
