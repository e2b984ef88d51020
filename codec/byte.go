package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ZlibByteCodec is the ByteCodec stand-in for PPMd (design note 4): no
// pure-Go PPMd binding exists in the retrieved corpus or ecosystem, so the
// contact-value byte stream is compressed with klauspost/compress/zlib
// instead, grounded on
// FreakyLittleDawg-go-openexr/compression/zip.go's use of the same package
// for EXR channel compression.
type ZlibByteCodec struct{}

// NewZlibByteCodec returns a ready-to-use ZlibByteCodec.
func NewZlibByteCodec() *ZlibByteCodec {
	return &ZlibByteCodec{}
}

// modelOrderToLevel maps PPMd's model_order, clamped to [2,16] as the
// original tool's wrapper does, monotonically onto zlib's compression
// level range [1,9]: a wider contact-value dtype (higher model_order)
// still asks for more compression effort.
func modelOrderToLevel(modelOrder int) int {
	if modelOrder < 2 {
		modelOrder = 2
	}
	if modelOrder > 16 {
		modelOrder = 16
	}
	return 1 + (modelOrder-2)*8/14
}

// Encode compresses data at the zlib level modelOrderToLevel derives from
// modelOrder.
func (c *ZlibByteCodec) Encode(data []byte, modelOrder int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, modelOrderToLevel(modelOrder))
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func (c *ZlibByteCodec) Decode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
