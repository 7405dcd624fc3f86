package image

import (
	"fmt"
	"testing"

	"github.com/ajroetker/hwyperm/hwy"
	"github.com/ajroetker/hwyperm/hwy/contrib/workerpool"
	"github.com/google/go-cmp/cmp"
)

func TestNewImage(t *testing.T) {
	img := NewImage[float32](100, 50)
	if img.Width() != 100 || img.Height() != 50 {
		t.Errorf("size: got %dx%d, want 100x50", img.Width(), img.Height())
	}
	lanes := hwy.MaxLanes[float32]()
	if img.Stride() < 100 || img.Stride()%lanes != 0 {
		t.Errorf("Stride = %d, want a multiple of %d >= 100", img.Stride(), lanes)
	}

	for _, dims := range [][2]int{{0, 0}, {-1, 10}, {10, 0}} {
		img := NewImage[uint8](dims[0], dims[1])
		if img.Width() != 0 || img.Height() != 0 || img.Row(0) != nil {
			t.Errorf("NewImage(%d, %d) is not empty", dims[0], dims[1])
		}
	}
}

func TestImage_RowAtSet(t *testing.T) {
	img := NewImage[int32](10, 5)
	img.Set(3, 2, 42)
	img.Set(-1, 0, 1)
	img.Set(10, 0, 1)
	if got := img.At(3, 2); got != 42 {
		t.Errorf("At(3, 2) = %d, want 42", got)
	}
	if got := img.Row(2)[3]; got != 42 {
		t.Errorf("Row(2)[3] = %d, want 42", got)
	}
	if got := len(img.RowSlice(2)); got != 10 {
		t.Errorf("len(RowSlice) = %d, want 10", got)
	}
	if img.At(-1, 0) != 0 || img.At(0, 5) != 0 {
		t.Error("At outside the image should be zero")
	}
	if img.Row(-1) != nil || img.Row(5) != nil || img.RowSlice(5) != nil {
		t.Error("rows outside the image should be nil")
	}
	if !SameSize(img, NewImage[float64](10, 5)) || SameSize(img, NewImage[int32](5, 10)) {
		t.Error("SameSize")
	}
}

func TestPlanes(t *testing.T) {
	p := NewPlanes[uint8](4, 7, 3)
	if p.NumPlanes() != 4 || p.Width() != 7 || p.Height() != 3 {
		t.Errorf("planes: %d of %dx%d", p.NumPlanes(), p.Width(), p.Height())
	}
	if p.Plane(4) != nil || p.Plane(-1) != nil {
		t.Error("Plane out of range should be nil")
	}
	if empty := NewPlanes[uint8](0, 7, 3); empty.Width() != 0 || empty.Height() != 0 {
		t.Error("no planes should report an empty size")
	}
}

// packed returns width x height pixels of n channels where channel c of
// pixel (x, y) is c*100 + y*width + x, truncated to T.
func packed[T hwy.Lanes](n, width, height, stride int) []T {
	buf := make([]T, height*stride)
	for y := range height {
		for x := range width {
			for c := range n {
				buf[y*stride+x*n+c] = T(c*100 + y*width + x)
			}
		}
	}
	return buf
}

func testPlanarRoundTrip[T hwy.Lanes](t *testing.T) {
	for _, n := range []int{2, 3, 4, 6} {
		for _, width := range []int{1, 5, 16, 33, 100} {
			height, stride := 3, width*n+2
			src := packed[T](n, width, height, stride)
			p, err := Deinterleave(src, n, width, height, stride)
			if err != nil {
				t.Fatalf("n=%d width=%d: %v", n, width, err)
			}
			for c := range n {
				for y := range height {
					for x := range width {
						if got, want := p.Plane(c).At(x, y), T(c*100+y*width+x); got != want {
							t.Fatalf("n=%d width=%d: plane %d (%d,%d) = %v, want %v", n, width, c, x, y, got, want)
						}
					}
				}
			}
			dst := make([]T, len(src))
			if err := Interleave(p, dst, stride); err != nil {
				t.Fatalf("Interleave: %v", err)
			}
			if diff := cmp.Diff(src, dst); diff != "" {
				t.Fatalf("n=%d width=%d: Interleave(Deinterleave(src)) differs (-src +dst):\n%s", n, width, diff)
			}
		}
	}
}

func TestPlanar_RoundTrip(t *testing.T) {
	t.Run("uint8", testPlanarRoundTrip[uint8])
	t.Run("int16", testPlanarRoundTrip[int16])
	t.Run("float32", testPlanarRoundTrip[float32])
	t.Run("float64", testPlanarRoundTrip[float64])
}

func TestPlanar_Errors(t *testing.T) {
	src := make([]uint8, 30)
	if _, err := Deinterleave(src, 5, 2, 3, 0); err == nil {
		t.Error("5 channels: expected error")
	}
	if _, err := Deinterleave(src, 3, 4, 3, 10); err == nil {
		t.Error("stride shorter than a row: expected error")
	}
	if _, err := Deinterleave(src, 3, 4, 3, 0); err == nil {
		t.Error("short buffer: expected error")
	}
	if err := Interleave(NewPlanes[uint8](3, 4, 3), src[:20], 0); err == nil {
		t.Error("Interleave into a short buffer: expected error")
	}
}

func testTranspose[T hwy.Lanes](t *testing.T, transpose func(*Image[T]) *Image[T]) {
	for _, dims := range [][2]int{{16, 16}, {37, 21}, {3, 70}, {64, 2}} {
		w, h := dims[0], dims[1]
		src := NewImage[T](w, h)
		for y := range h {
			for x := range w {
				src.Set(x, y, T(y*w+x))
			}
		}
		dst := transpose(src)
		if dst.Width() != h || dst.Height() != w {
			t.Fatalf("%dx%d: transpose is %dx%d", w, h, dst.Width(), dst.Height())
		}
		for y := range h {
			for x := range w {
				if got, want := dst.At(y, x), src.At(x, y); got != want {
					t.Fatalf("%dx%d: dst(%d,%d) = %v, want %v", w, h, y, x, got, want)
				}
			}
		}
	}
}

func TestTranspose(t *testing.T) {
	t.Run("uint8", func(t *testing.T) { testTranspose(t, Transpose[uint8]) })
	t.Run("uint16", func(t *testing.T) { testTranspose(t, Transpose[uint16]) })
	t.Run("float32", func(t *testing.T) { testTranspose(t, Transpose[float32]) })
	t.Run("int64", func(t *testing.T) { testTranspose(t, Transpose[int64]) })
}

func TestTransposeParallel(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()
	testTranspose(t, func(img *Image[uint8]) *Image[uint8] { return TransposeParallel(pool, img) })
	testTranspose(t, func(img *Image[float32]) *Image[float32] { return TransposeParallel(pool, img) })
}

func BenchmarkDeinterleave3(b *testing.B) {
	for _, width := range []int{64, 1920} {
		src := packed[uint8](3, width, 16, 3*width)
		b.Run(fmt.Sprint(width), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			for b.Loop() {
				_, _ = Deinterleave(src, 3, width, 16, 0)
			}
		})
	}
}

func BenchmarkTranspose(b *testing.B) {
	src := NewImage[uint8](1024, 1024)
	for b.Loop() {
		Transpose(src)
	}
}
