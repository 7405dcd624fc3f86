// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package byteshuffle

import (
	"encoding/binary"
	"slices"

	"github.com/ajroetker/hwyperm/hwy/contrib/workerpool"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

// frameMagic starts every frame written by Codec.Encode.
var frameMagic = [4]byte{'H', 'W', 'S', 1}

const (
	// maxTypeSize bounds the element size accepted from a frame header.
	maxTypeSize = 1 << 16

	// maxSizeHint caps the buffer preallocated from an untrusted header.
	maxSizeHint = 1 << 24

	// defaultMaxDecoded is the default limit on the plain size of a frame.
	defaultMaxDecoded = 1 << 30
)

// Codec shuffles typed buffers and compresses them with zstd. A frame is
//
//	magic [4]byte | typeSize uvarint | plain length uvarint | zstd payload
//
// Encode and Decode are safe for concurrent use.
type Codec struct {
	typeSize   int
	maxDecoded uint64
	pool       *workerpool.Pool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

// Option configures a Codec.
type Option func(*options)

type options struct {
	level      zstd.EncoderLevel
	maxDecoded uint64
	pool       *workerpool.Pool
}

// WithLevel sets the zstd encoder level. The default is zstd.SpeedDefault.
func WithLevel(level zstd.EncoderLevel) Option {
	return func(o *options) { o.level = level }
}

// WithMaxDecodedSize limits the plain size of the frames Decode accepts,
// both as stated in the header and as inflated by zstd. The default is 1 GiB.
func WithMaxDecodedSize(n uint64) Option {
	return func(o *options) { o.maxDecoded = max(n, 1) }
}

// WithPool shuffles through ShuffleParallel on pool. The Codec does not
// close the pool.
func WithPool(pool *workerpool.Pool) Option {
	return func(o *options) { o.pool = pool }
}

// NewCodec returns a Codec for elements of typeSize bytes.
func NewCodec(typeSize int, opts ...Option) (*Codec, error) {
	if typeSize < 1 || typeSize > maxTypeSize {
		return nil, errors.Newf("byteshuffle: element size %d out of range [1, %d]", typeSize, maxTypeSize)
	}
	o := options{level: zstd.SpeedDefault, maxDecoded: defaultMaxDecoded}
	for _, opt := range opts {
		opt(&o)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(o.level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, errors.Wrap(err, "byteshuffle: zstd encoder")
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(o.maxDecoded))
	if err != nil {
		return nil, errors.CombineErrors(errors.Wrap(err, "byteshuffle: zstd decoder"), enc.Close())
	}
	return &Codec{typeSize: typeSize, maxDecoded: o.maxDecoded, pool: o.pool, enc: enc, dec: dec}, nil
}

// TypeSize returns the element size of the buffers the Codec encodes.
func (c *Codec) TypeSize() int {
	return c.typeSize
}

// Close releases the zstd encoder and decoder.
func (c *Codec) Close() error {
	c.dec.Close()
	return c.enc.Close()
}

func (c *Codec) shuffle(dst, src []byte, typeSize int) {
	if c.pool != nil {
		ShuffleParallel(c.pool, dst, src, typeSize)
		return
	}
	Shuffle(dst, src, typeSize)
}

func (c *Codec) unshuffle(dst, src []byte, typeSize int) {
	if c.pool != nil {
		UnshuffleParallel(c.pool, dst, src, typeSize)
		return
	}
	Unshuffle(dst, src, typeSize)
}

// Encode appends the frame for src to dst and returns the result.
func (c *Codec) Encode(dst, src []byte) []byte {
	dst = append(dst, frameMagic[:]...)
	dst = binary.AppendUvarint(dst, uint64(c.typeSize))
	dst = binary.AppendUvarint(dst, uint64(len(src)))
	shuffled := make([]byte, len(src))
	c.shuffle(shuffled, src, c.typeSize)
	return c.enc.EncodeAll(shuffled, dst)
}

// Decode appends the plain bytes of frame to dst and returns the result,
// which is non-nil on success even for an empty frame. The element size
// comes from the frame header, so any Codec decodes any frame.
func (c *Codec) Decode(dst, frame []byte) ([]byte, error) {
	h, err := parseHeader(frame)
	if err != nil {
		return dst, err
	}
	if h.length > c.maxDecoded {
		return dst, errors.Newf("byteshuffle: frame holds %d bytes, limit is %d", h.length, c.maxDecoded)
	}
	shuffled, err := c.dec.DecodeAll(frame[h.size:], make([]byte, 0, min(h.length, maxSizeHint)))
	if err != nil {
		return dst, errors.Wrap(err, "byteshuffle: zstd payload")
	}
	if uint64(len(shuffled)) != h.length {
		return dst, errors.Newf("byteshuffle: payload holds %d bytes, header says %d", len(shuffled), h.length)
	}
	if dst == nil {
		dst = make([]byte, 0, len(shuffled))
	}
	start := len(dst)
	dst = slices.Grow(dst, len(shuffled))[:start+len(shuffled)]
	c.unshuffle(dst[start:], shuffled, h.typeSize)
	return dst, nil
}

// header is the decoded frame prefix.
type header struct {
	typeSize int
	length   uint64
	size     int
}

// ErrNotAFrame is returned by Decode for input that does not start with the
// frame magic.
var ErrNotAFrame = errors.New("byteshuffle: not a frame")

func parseHeader(frame []byte) (header, error) {
	if len(frame) < len(frameMagic) || [4]byte(frame[:4]) != frameMagic {
		return header{}, ErrNotAFrame
	}
	off := len(frameMagic)
	ts, n := binary.Uvarint(frame[off:])
	if n <= 0 {
		return header{}, errors.New("byteshuffle: truncated element size")
	}
	off += n
	if ts < 1 || ts > maxTypeSize {
		return header{}, errors.Newf("byteshuffle: element size %d out of range [1, %d]", ts, maxTypeSize)
	}
	length, n := binary.Uvarint(frame[off:])
	if n <= 0 {
		return header{}, errors.New("byteshuffle: truncated length")
	}
	off += n
	return header{typeSize: int(ts), length: length, size: off}, nil
}
