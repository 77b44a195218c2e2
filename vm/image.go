package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ImageVersion is bumped whenever the encoding of an image changes.
const ImageVersion = 1

// image is the serialized form of a Chunk.
type image struct {
	Version int          `cbor:"1,keyasint"`
	Code    []byte       `cbor:"2,keyasint"`
	Lines   []int        `cbor:"3,keyasint"`
	Consts  []imageConst `cbor:"4,keyasint,omitempty"`
}

type constKind uint8

const (
	constNum constKind = iota + 1
)

// imageConst is a tagged constant record, so that new value variants can be
// added without changing the layout of existing images.
type imageConst struct {
	Kind constKind `cbor:"1,keyasint"`
	Num  float64   `cbor:"2,keyasint"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalChunk serializes a Chunk to CBOR bytes.
func MarshalChunk(c *Chunk) ([]byte, error) {
	img := image{Version: ImageVersion, Code: c.code, Lines: c.lines}
	for i, val := range c.consts {
		switch val := val.(type) {
		case VNum:
			img.Consts = append(img.Consts, imageConst{Kind: constNum, Num: float64(val)})
		default:
			return nil, fmt.Errorf("vm: marshal chunk: unsupported constant #%d of type %T", i, val)
		}
	}
	return cborEncMode.Marshal(img)
}

// UnmarshalChunk deserializes a Chunk from CBOR bytes and validates it.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	var img image
	if err := cbor.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("vm: unmarshal chunk: %w", err)
	}
	if img.Version != ImageVersion {
		return nil, fmt.Errorf("vm: unmarshal chunk: unsupported image version %d", img.Version)
	}

	c := &Chunk{code: img.Code, lines: img.Lines}
	for i, const_ := range img.Consts {
		switch const_.Kind {
		case constNum:
			c.consts = append(c.consts, VNum(const_.Num))
		default:
			return nil, fmt.Errorf("vm: unmarshal chunk: unknown kind %d for constant #%d", const_.Kind, i)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("vm: invalid chunk: %w", err)
	}
	return c, nil
}
