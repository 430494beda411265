// Package io provides the .abin binary image format shared by the AISA
// assembler and emulator: a sequence of 16-bit words, each stored as two
// bytes, high byte first.
package io

import (
	"encoding/binary"
	"io"
)

// EXTENSION is the conventional file extension of a binary image.
const EXTENSION = ".abin"

// EncodeImage converts words to image bytes.
func EncodeImage(words []uint16) []byte {
	out := make([]byte, len(words)*2)
	for i, w := range words {
		binary.BigEndian.PutUint16(out[i*2:], w)
	}
	return out
}

// DecodeImage converts image bytes to words. An odd trailing byte is an
// ErrImageTruncated error at its offset.
func DecodeImage(data []byte) (words []uint16, err error) {
	if len(data)%2 != 0 {
		err = &ErrImageOffset{Offset: len(data) - 1, Err: ErrImageTruncated}
		return
	}

	words = make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.BigEndian.Uint16(data[i*2:])
	}
	return
}

// ReadImage reads a whole image from r.
func ReadImage(r io.Reader) (words []uint16, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	return DecodeImage(data)
}

// WriteImage writes words to w as an image.
func WriteImage(w io.Writer, words []uint16) (err error) {
	_, err = w.Write(EncodeImage(words))
	return
}
