package scanner

import "unicode/utf8"

// decoder is the lookahead cursor. It is a small value so that multi-character
// lookahead can run on a copy without touching the scanner's own state.
type decoder struct {
	src string
	off int
}

func (d decoder) peek() (r rune, size int) {
	if d.off >= len(d.src) {
		return utf8.RuneError, 0
	}
	b := d.src[d.off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(d.src[d.off:])
}

func (d *decoder) next() (r rune, size int) {
	r, size = d.peek()
	d.off += size
	return r, size
}
