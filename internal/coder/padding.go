package coder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unsafe"
)

var (
	headPadding = []byte("serum")
	tailPadding = []byte("padding")
)

// Words is the interior of a serum account viewed as little-endian 64-bit
// words, with the head/tail padding already stripped.
type Words []uint64

func hostLittleEndian() bool {
	var probe uint16 = 1
	return *(*byte)(unsafe.Pointer(&probe)) == 1
}

// StripPadding checks the fixed "serum"/"padding" framing of raw account
// data and returns the interior as words. The result aliases data when the
// interior happens to be 8-byte aligned and is an owned copy otherwise; the
// values are identical either way. Callers must not mutate data while
// holding the result.
func StripPadding(data []byte) (Words, error) {
	if !hostLittleEndian() {
		return nil, ErrBigEndianHost
	}

	if len(data) < len(headPadding)+len(tailPadding) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(data))
	}

	if !bytes.Equal(data[:len(headPadding)], headPadding) {
		return nil, ErrHeadPadding
	}

	if !bytes.Equal(data[len(data)-len(tailPadding):], tailPadding) {
		return nil, ErrTailPadding
	}

	interior := data[len(headPadding) : len(data)-len(tailPadding)]
	if len(interior)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrWordLength, len(interior))
	}

	return wordsOf(interior), nil
}

func wordsOf(interior []byte) Words {
	n := len(interior) / 8
	if n == 0 {
		return Words{}
	}

	if uintptr(unsafe.Pointer(&interior[0]))%8 == 0 {
		return unsafe.Slice((*uint64)(unsafe.Pointer(&interior[0])), n)
	}

	words := make(Words, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(interior[i*8:])
	}
	return words
}

// Bytes exposes the words as raw little-endian bytes for layout decoding.
func (w Words) Bytes() []byte {
	if len(w) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&w[0])), len(w)*8)
}
