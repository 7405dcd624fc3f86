package hwy

func init() {
	register(scalarTarget{}, 0)
}

// scalarTarget defines every primitive by element index over the whole
// vector, as one register as wide as the vector would. It is the reference
// the other targets are checked against and the fallback on CPUs without a
// supported vector unit.
type scalarTarget struct{}

func (scalarTarget) Name() string         { return "scalar" }
func (scalarTarget) Level() DispatchLevel { return DispatchScalar }
func (scalarTarget) RegisterBytes() int   { return 16 }
func (scalarTarget) Emulated() bool       { return false }

func (scalarTarget) zipLo(a, b raw, g, w int) raw {
	return scalarZip(a, b, g, w, 0)
}

func (scalarTarget) zipHi(a, b raw, g, w int) raw {
	return scalarZip(a, b, g, w, BlockBytes/2)
}

// scalarZip interleaves the g-byte units of a and b starting at byte off of
// every block.
func scalarZip(a, b raw, g, w, off int) raw {
	var r raw
	half := BlockBytes / g / 2
	for blk := 0; blk < w; blk += BlockBytes {
		for i := range half {
			for k := range g {
				src := blk + off + i*g + k
				r.b[blk+2*i*g+k] = a.b[src]
				r.b[blk+(2*i+1)*g+k] = b.b[src]
			}
		}
	}
	return r
}

func (scalarTarget) unzipLo(a, b raw, g, w int) raw {
	return scalarUnzip(a, b, g, w, 0)
}

func (scalarTarget) unzipHi(a, b raw, g, w int) raw {
	return scalarUnzip(a, b, g, w, 1)
}

// scalarUnzip gathers units phase, phase+2, ... of each block of a into the
// low half of the result block and those of b into the high half.
func scalarUnzip(a, b raw, g, w, phase int) raw {
	var r raw
	half := BlockBytes / g / 2
	for blk := 0; blk < w; blk += BlockBytes {
		for i := range half {
			for k := range g {
				src := blk + (2*i+phase)*g + k
				r.b[blk+i*g+k] = a.b[src]
				r.b[blk+(half+i)*g+k] = b.b[src]
			}
		}
	}
	return r
}

func (scalarTarget) shuffleBytes(a, b raw, m ShuffleMask, w int) raw {
	var r raw
	for blk := 0; blk < w; blk += BlockBytes {
		for i, c := range m {
			switch {
			case c&ZeroIndex != 0:
			case c < secondSource:
				r.b[blk+i] = a.b[blk+int(c)]
			default:
				r.b[blk+i] = b.b[blk+int(c)-secondSource]
			}
		}
	}
	return r
}

func (scalarTarget) blend(on, off, m raw, w int) raw {
	var r raw
	for i := range w {
		r.b[i] = on.b[i]&m.b[i] | off.b[i]&^m.b[i]
	}
	return r
}

func (scalarTarget) alignBlocks(lo, hi raw, n, w int) raw {
	var r raw
	for blk := 0; blk < w; blk += BlockBytes {
		for i := range BlockBytes {
			j := i + n
			if j < BlockBytes {
				r.b[blk+i] = lo.b[blk+j]
			} else {
				r.b[blk+i] = hi.b[blk+j-BlockBytes]
			}
		}
	}
	return r
}

func (scalarTarget) reverseGroups(a raw, gb, es, w int) raw {
	var r raw
	n := gb / es
	for base := 0; base < w; base += gb {
		for i := range n {
			for k := range es {
				r.b[base+i*es+k] = a.b[base+(n-1-i)*es+k]
			}
		}
	}
	return r
}

func (scalarTarget) broadcastGroups(a raw, lane, gb, es, w int) raw {
	var r raw
	for base := 0; base < w; base += gb {
		for i := 0; i < gb; i += es {
			for k := range es {
				r.b[base+i+k] = a.b[base+lane*es+k]
			}
		}
	}
	return r
}

func (scalarTarget) lookupBytes(a, b raw, idx [MaxBytes]byte, w int) raw {
	var r raw
	for i := range w {
		c := idx[i]
		switch {
		case c&ZeroIndex != 0:
		case c < wideSecondSource:
			r.b[i] = a.b[c]
		default:
			r.b[i] = b.b[c-wideSecondSource]
		}
	}
	return r
}

func (scalarTarget) permuteBlocks(a, b raw, sel [4]int8, w int) raw {
	var r raw
	for i := range w / BlockBytes {
		s := int(sel[i])
		switch {
		case s < 0:
		case s < 4:
			copy(r.b[i*BlockBytes:(i+1)*BlockBytes], a.b[s*BlockBytes:])
		default:
			copy(r.b[i*BlockBytes:(i+1)*BlockBytes], b.b[(s-4)*BlockBytes:])
		}
	}
	return r
}

func (scalarTarget) alignWide(lo, hi raw, n, w int) raw {
	var r raw
	for i := range w {
		j := i + n
		if j < w {
			r.b[i] = lo.b[j]
		} else {
			r.b[i] = hi.b[j-w]
		}
	}
	return r
}
