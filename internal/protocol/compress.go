package protocol

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// CompressionZstd is the SUBSCRIBE compression value asking the server for
// zstd-compressed binary frames.
const CompressionZstd = "zstd"

// maxMessageSize bounds decompressed messages.
const maxMessageSize = 64 << 20

// EncodeAll and DecodeAll are safe for concurrent use, so one coder of
// each kind serves every connection.
var (
	zstdEnc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDec, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(maxMessageSize))
)

// Compress returns b compressed as a single zstd frame.
func Compress(b []byte) []byte {
	return zstdEnc.EncodeAll(b, make([]byte, 0, len(b)/2))
}

// Decompress reverses Compress.
func Decompress(b []byte) ([]byte, error) {
	out, err := zstdDec.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}
