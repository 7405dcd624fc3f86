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
	"math"
	"testing"

	"github.com/ajroetker/hwyperm/hwy/contrib/workerpool"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smoothFloats returns a slowly varying float64 series, the kind of data
// the shuffle helps most.
func smoothFloats(n int) []byte {
	b := make([]byte, 0, 8*n)
	for i := range n {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(1000+float64(i)*0.25))
	}
	return b
}

func newCodec(t *testing.T, typeSize int, opts ...Option) *Codec {
	t.Helper()
	c, err := NewCodec(typeSize, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, c.Close()) })
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()
	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"fastest", []Option{WithLevel(zstd.SpeedFastest)}},
		{"pool", []Option{WithPool(pool)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, ts := range typeSizes {
				c := newCodec(t, ts, tc.opts...)
				assert.Equal(t, ts, c.TypeSize())
				for _, n := range lengths(ts) {
					src := randomBytes(n, uint64(n))
					frame := c.Encode(nil, src)
					got, err := c.Decode(nil, frame)
					require.NoError(t, err)
					require.Equal(t, len(src), len(got))
					require.Equal(t, src, got, "typeSize=%d len=%d", ts, n)
				}
			}
		})
	}
}

func TestCodec_EmptyFrame(t *testing.T) {
	c := newCodec(t, 8)
	got, err := c.Decode(nil, c.Encode(nil, nil))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = c.Decode(nil, c.Encode(nil, []byte{}))
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)
}

func TestCodec_AppendsToDst(t *testing.T) {
	c := newCodec(t, 4)
	src := randomBytes(100, 2)
	frame := c.Encode([]byte("prefix"), src)
	require.Equal(t, "prefix", string(frame[:6]))

	got, err := c.Decode([]byte{1, 2}, frame[6:])
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got[:2])
	assert.Equal(t, src, got[2:])
}

func TestCodec_HeaderCarriesTypeSize(t *testing.T) {
	src := smoothFloats(4096)
	frame := newCodec(t, 8).Encode(nil, src)
	got, err := newCodec(t, 2).Decode(nil, frame)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestCodec_ShuffleHelpsTypedData(t *testing.T) {
	src := smoothFloats(1 << 14)
	shuffled := len(newCodec(t, 8).Encode(nil, src))
	plain := len(newCodec(t, 1).Encode(nil, src))
	assert.Less(t, shuffled, plain, "shuffled frame should be smaller than the unshuffled one")
}

func TestCodec_DecodeErrors(t *testing.T) {
	c := newCodec(t, 4)
	frame := c.Encode(nil, randomBytes(256, 3))

	_, err := c.Decode(nil, []byte("nope"))
	assert.True(t, errors.Is(err, ErrNotAFrame), "got %v", err)

	_, err = c.Decode(nil, frame[:4])
	assert.ErrorContains(t, err, "truncated element size")

	bad := append([]byte(nil), frame[:4]...)
	bad = binary.AppendUvarint(bad, 0)
	_, err = c.Decode(nil, bad)
	assert.ErrorContains(t, err, "element size 0 out of range")

	_, err = c.Decode(nil, frame[:5])
	assert.ErrorContains(t, err, "truncated length")

	_, err = c.Decode(nil, frame[:len(frame)-4])
	assert.ErrorContains(t, err, "zstd payload")

	lying := append([]byte(nil), frame[:5]...)
	lying = binary.AppendUvarint(lying, 10)
	lying = append(lying, frame[7:]...)
	_, err = c.Decode(nil, lying)
	assert.ErrorContains(t, err, "header says 10")
}

func TestCodec_MaxDecodedSize(t *testing.T) {
	src := make([]byte, 1<<16)
	frame := newCodec(t, 4).Encode(nil, src)
	small := newCodec(t, 4, WithMaxDecodedSize(1<<10))

	_, err := small.Decode(nil, frame)
	assert.ErrorContains(t, err, "limit is 1024")

	// A header that understates the size must not let zstd inflate past
	// the limit.
	h, err := parseHeader(frame)
	require.NoError(t, err)
	lying := append([]byte(nil), frame[:5]...)
	lying = binary.AppendUvarint(lying, 16)
	lying = append(lying, frame[h.size:]...)
	_, err = small.Decode(nil, lying)
	assert.ErrorContains(t, err, "zstd payload")

	got, err := newCodec(t, 4, WithMaxDecodedSize(1<<16)).Decode(nil, frame)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestNewCodec_BadTypeSize(t *testing.T) {
	for _, ts := range []int{0, -1, maxTypeSize + 1} {
		_, err := NewCodec(ts)
		assert.Error(t, err, "typeSize=%d", ts)
	}
}
