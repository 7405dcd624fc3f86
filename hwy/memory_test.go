package hwy

import (
	"reflect"
	"testing"
)

func TestLoadStore(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		src := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
		v := Load(FixedTag256[float32]{}, src)
		if v.NumLanes() != 8 {
			t.Fatalf("got %d lanes, want 8", v.NumLanes())
		}
		dst := make([]float32, 8)
		Store(v, dst)
		if !reflect.DeepEqual(dst, src[:8]) {
			t.Errorf("got %v, want %v", dst, src[:8])
		}
	})

	t.Run("short source zero fills", func(t *testing.T) {
		v := Load(FixedTag128[int32]{}, []int32{7, 8})
		if got, want := v.Data(), []int32{7, 8, 0, 0}; !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("short destination", func(t *testing.T) {
		v := Iota[uint16](FixedTag128[uint16]{})
		dst := make([]uint16, 3)
		v.Store(dst)
		if want := []uint16{0, 1, 2}; !reflect.DeepEqual(dst, want) {
			t.Errorf("got %v, want %v", dst, want)
		}
	})

	t.Run("bad width panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		Zero[uint8](badTag{})
	})
}

type badTag struct{}

func (badTag) Width() int   { return 24 }
func (badTag) Name() string { return "bad" }

func TestConstructors(t *testing.T) {
	if got, want := Set(FixedTag128[float64]{}, 2.5).Data(), []float64{2.5, 2.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Set = %v, want %v", got, want)
	}
	if got := Iota[uint8](FixedTag512[uint8]{}); got.Lane(63) != 63 {
		t.Errorf("Iota lane 63 = %d", got.Lane(63))
	}
	if got := Zero[int64](FixedTag256[int64]{}); got.NumLanes() != 4 || got.Lane(3) != 0 {
		t.Errorf("Zero = %v", got.Data())
	}
	if got := Undefined[float32](ScalableTag[float32]{}); got.NumLanes() != MaxLanes[float32]() {
		t.Errorf("Undefined has %d lanes, want %d", got.NumLanes(), MaxLanes[float32]())
	}
}

func TestBitCast(t *testing.T) {
	v := Load(FixedTag128[uint32]{}, []uint32{0x04030201, 0x08070605})
	b := BitCast[uint8](v)
	if got, want := b.Data()[:8], []uint8{1, 2, 3, 4, 5, 6, 7, 8}; !reflect.DeepEqual(got, want) {
		t.Errorf("BitCast = %v, want %v", got, want)
	}
	if back := BitCast[uint32](b); back != v {
		t.Errorf("BitCast round trip = %v", back.Data())
	}
}

func TestLoadDup128(t *testing.T) {
	v := LoadDup128(FixedTag512[float32]{}, []float32{1, 2, 3, 4, 5})
	want := []float32{1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4, 1, 2, 3, 4}
	if got := v.Data(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBlendedStore(t *testing.T) {
	tag := FixedTag128[float32]{}
	v := Load(tag, []float32{1, 2, 3, 4})

	t.Run("mixed mask", func(t *testing.T) {
		mask := MaskFunc[float32](tag, func(i int) bool { return i%2 == 0 })
		dst := []float32{10, 20, 30, 40}
		BlendedStore(v, mask, dst)
		if want := []float32{1, 20, 3, 40}; !reflect.DeepEqual(dst, want) {
			t.Errorf("got %v, want %v", dst, want)
		}
	})

	t.Run("all false mask", func(t *testing.T) {
		dst := []float32{10, 20, 30, 40}
		BlendedStore(v, FirstN[float32](tag, 0), dst)
		if want := []float32{10, 20, 30, 40}; !reflect.DeepEqual(dst, want) {
			t.Errorf("got %v, want %v (should be unchanged)", dst, want)
		}
	})

	t.Run("partial dst", func(t *testing.T) {
		dst := []float32{10, 20}
		BlendedStore(v, FirstN[float32](tag, 4), dst)
		if want := []float32{1, 2}; !reflect.DeepEqual(dst, want) {
			t.Errorf("got %v, want %v", dst, want)
		}
	})

	t.Run("empty dst", func(t *testing.T) {
		BlendedStore(v, FirstN[float32](tag, 4), nil)
	})
}

func TestLoadInterleaved2(t *testing.T) {
	src := []float32{1, 10, 2, 20, 3, 30, 4, 40}
	a, b := LoadInterleaved2(FixedTag128[float32]{}, src)
	if got, want := a.Data(), []float32{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("a = %v, want %v", got, want)
	}
	if got, want := b.Data(), []float32{10, 20, 30, 40}; !reflect.DeepEqual(got, want) {
		t.Errorf("b = %v, want %v", got, want)
	}
}

func TestLoadInterleaved3_RGB(t *testing.T) {
	// 16 RGB pixels.
	src := make([]uint8, 48)
	for i := range 16 {
		src[3*i], src[3*i+1], src[3*i+2] = uint8(i), uint8(100+i), uint8(200+i)
	}
	r, g, b := LoadInterleaved3(FixedTag128[uint8]{}, src)
	for i := range 16 {
		if r.Lane(i) != uint8(i) || g.Lane(i) != uint8(100+i) || b.Lane(i) != uint8(200+i) {
			t.Fatalf("pixel %d = (%d,%d,%d)", i, r.Lane(i), g.Lane(i), b.Lane(i))
		}
	}
}

func TestLoadInterleaved4(t *testing.T) {
	src := []int16{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
		17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32,
	}
	a, b, c, d := LoadInterleaved4(FixedTag128[int16]{}, src)
	for i := range 8 {
		base := int16(4*i + 1)
		if a.Lane(i) != base || b.Lane(i) != base+1 || c.Lane(i) != base+2 || d.Lane(i) != base+3 {
			t.Fatalf("group %d = %d %d %d %d", i, a.Lane(i), b.Lane(i), c.Lane(i), d.Lane(i))
		}
	}
}

func TestLoadInterleaved_ShortSource(t *testing.T) {
	// Three complete triples; the rest of the vectors is zero.
	a, b, c := LoadInterleaved3(FixedTag256[uint32]{}, []uint32{1, 2, 3, 4, 5, 6, 7, 8, 9})
	if got, want := a.Data(), []uint32{1, 4, 7, 0, 0, 0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("a = %v, want %v", got, want)
	}
	if got, want := c.Data(), []uint32{3, 6, 9, 0, 0, 0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("c = %v, want %v", got, want)
	}
	_ = b
}

func TestStoreInterleaved_RoundTrip(t *testing.T) {
	for _, w := range widths {
		tag := tagOf(w)
		n := w / 2
		src := make([]uint16, 6*n)
		for i := range src {
			src[i] = uint16(i * 7)
		}

		dst := make([]uint16, 2*n)
		a, b := LoadInterleaved2(tag, src)
		StoreInterleaved2(a, b, dst)
		if !reflect.DeepEqual(dst, src[:2*n]) {
			t.Errorf("w=%d: StoreInterleaved2 = %v, want %v", w, dst, src[:2*n])
		}

		dst = make([]uint16, 3*n)
		x, y, z := LoadInterleaved3(tag, src)
		StoreInterleaved3(x, y, z, dst)
		if !reflect.DeepEqual(dst, src[:3*n]) {
			t.Errorf("w=%d: StoreInterleaved3 = %v, want %v", w, dst, src[:3*n])
		}

		dst = make([]uint16, 4*n)
		p, q, r, s := LoadInterleaved4(tag, src)
		StoreInterleaved4(p, q, r, s, dst)
		if !reflect.DeepEqual(dst, src[:4*n]) {
			t.Errorf("w=%d: StoreInterleaved4 = %v, want %v", w, dst, src[:4*n])
		}

		dst = make([]uint16, 6*n)
		StoreInterleaved6(LoadInterleaved6(tag, src), dst)
		if !reflect.DeepEqual(dst, src) {
			t.Errorf("w=%d: StoreInterleaved6 = %v, want %v", w, dst, src)
		}
	}
}

func TestStoreInterleaved2_ShortDestination(t *testing.T) {
	a := Load(FixedTag128[uint32]{}, []uint32{1, 2, 3, 4})
	b := Load(FixedTag128[uint32]{}, []uint32{5, 6, 7, 8})
	dst := make([]uint32, 5)
	StoreInterleaved2(a, b, dst)
	if want := []uint32{1, 5, 2, 6, 3}; !reflect.DeepEqual(dst, want) {
		t.Errorf("got %v, want %v", dst, want)
	}
}

func BenchmarkLoadInterleaved3(b *testing.B) {
	src := make([]uint8, 3*64)
	tag := FixedTag512[uint8]{}
	for b.Loop() {
		LoadInterleaved3(tag, src)
	}
}
