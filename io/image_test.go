package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageEncode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]byte{}, EncodeImage(nil))
	assert.Equal([]byte{0x80, 0x40, 0x00, 0x00, 0xbe, 0xef}, EncodeImage([]uint16{0x8040, 0, 0xbeef}))
}

func TestImageDecode(t *testing.T) {
	assert := assert.New(t)

	words, err := DecodeImage([]byte{0x80, 0x40, 0x00, 0x00, 0xbe, 0xef})
	assert.NoError(err)
	assert.Equal([]uint16{0x8040, 0, 0xbeef}, words)

	words, err = DecodeImage(nil)
	assert.NoError(err)
	assert.Empty(words)

	_, err = DecodeImage([]byte{0x80, 0x40, 0x01})
	assert.True(errors.Is(err, ErrImageTruncated))
	var eo *ErrImageOffset
	if assert.True(errors.As(err, &eo)) {
		assert.Equal(2, eo.Offset)
	}
}

func TestImageReadWrite(t *testing.T) {
	assert := assert.New(t)

	image := []uint16{0x0000, 0x0200, 0x031f, 0x2a00, 0x4fff, 0xffff}

	buf := &bytes.Buffer{}
	err := WriteImage(buf, image)
	assert.NoError(err)
	assert.Equal(len(image)*2, buf.Len())

	words, err := ReadImage(buf)
	assert.NoError(err)
	assert.Equal(image, words)

	_, err = ReadImage(bytes.NewReader([]byte{1}))
	assert.True(errors.Is(err, ErrImageTruncated))
}
