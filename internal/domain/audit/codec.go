package audit

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// DefaultCompressThreshold is the payload size above which changes are
// stored zstd-compressed instead of as plain JSON.
const DefaultCompressThreshold = 10 * 1024

// Codec compresses and decompresses audit change payloads.
type Codec struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	threshold int
}

// NewCodec creates a codec with the default compression threshold.
func NewCodec() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Codec{
		encoder:   encoder,
		decoder:   decoder,
		threshold: DefaultCompressThreshold,
	}, nil
}

// Compress moves Changes into ChangesCompressed when the payload exceeds
// the threshold. Small payloads stay as plain JSON for easy querying.
func (c *Codec) Compress(entry *Entry) {
	entry.CompressionAlgo = CompressionNone
	if len(entry.Changes) > c.threshold {
		entry.ChangesCompressed = c.encoder.EncodeAll(entry.Changes, nil)
		entry.Changes = nil
		entry.CompressionAlgo = CompressionZstd
	}
}

// Decompress restores Changes from ChangesCompressed if needed.
func (c *Codec) Decompress(entry *Entry) error {
	if entry.CompressionAlgo != CompressionZstd || len(entry.ChangesCompressed) == 0 {
		return nil
	}
	decompressed, err := c.decoder.DecodeAll(entry.ChangesCompressed, nil)
	if err != nil {
		return fmt.Errorf("decompress changes: %w", err)
	}
	entry.Changes = decompressed
	entry.ChangesCompressed = nil
	entry.CompressionAlgo = CompressionNone
	return nil
}
