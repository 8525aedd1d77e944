package pngenc

import (
	"bytes"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient returns a w×h RGBA buffer with every channel varying, including alpha.
func gradient(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			pix[i] = uint8(x * 16)
			pix[i+1] = uint8(y * 16)
			pix[i+2] = uint8(x ^ y)
			pix[i+3] = uint8(255 - x*y)
		}
	}
	return pix
}

func TestEncode_Signature(t *testing.T) {
	out, err := EncodeBytes(16, 16, gradient(16, 16))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, out[:8])
}

func TestEncode_ChunkLayout(t *testing.T) {
	out, err := EncodeBytes(16, 16, gradient(16, 16))
	require.NoError(t, err)

	chunks, err := ReadChunks(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, TypeIHDR, chunks[0].Type)
	assert.Equal(t, TypeIDAT, chunks[1].Type)
	assert.Equal(t, TypeIEND, chunks[2].Type)
	assert.Empty(t, chunks[2].Data)

	h, err := ParseHeader(chunks[0].Data)
	require.NoError(t, err)
	assert.Equal(t, Header{Width: 16, Height: 16, BitDepth: 8, ColorType: 6}, h)
}

func TestEncode_ChecksumsRecompute(t *testing.T) {
	out, err := EncodeBytes(5, 3, gradient(5, 3))
	require.NoError(t, err)

	raw, err := ReadRawChunks(bytes.NewReader(out))
	require.NoError(t, err)
	for _, c := range raw {
		want := crc32.ChecksumIEEE(append([]byte(c.Type), c.Data...))
		assert.Equal(t, want, c.Stored, "chunk %s", c.Type)
		assert.True(t, c.Valid())
	}
}

func TestEncode_RoundTripThroughImagePNG(t *testing.T) {
	for _, sz := range [][2]int{{16, 16}, {1, 1}, {7, 3}} {
		w, h := sz[0], sz[1]
		pix := gradient(w, h)
		out, err := EncodeBytes(w, h, pix)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		nrgba, ok := img.(*image.NRGBA)
		require.True(t, ok, "decoded %T", img)
		assert.Equal(t, image.Rect(0, 0, w, h), nrgba.Bounds())
		assert.Equal(t, pix, nrgba.Pix)
	}
}

func TestEncode_InflateUnfilter(t *testing.T) {
	pix := gradient(9, 4)
	out, err := EncodeBytes(9, 4, pix)
	require.NoError(t, err)

	chunks, err := ReadChunks(bytes.NewReader(out))
	require.NoError(t, err)
	raw, err := Inflate(chunks)
	require.NoError(t, err)
	require.Len(t, raw, 4*(9*4+1))
	for y := 0; y < 4; y++ {
		assert.Zero(t, raw[y*(9*4+1)], "row %d filter byte", y)
	}

	h, err := ParseHeader(chunks[0].Data)
	require.NoError(t, err)
	got, err := Unfilter(h, raw)
	require.NoError(t, err)
	assert.Equal(t, pix, got)
}

func TestEncode_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		pix  []byte
		want error
	}{
		{"zero width", 0, 4, nil, ErrDimensions},
		{"negative height", 4, -1, nil, ErrDimensions},
		{"short buffer", 4, 4, make([]byte, 4*4*4-1), ErrBufferLength},
		{"long buffer", 2, 2, make([]byte, 2*2*4+4), ErrBufferLength},
		{"rgb buffer", 2, 2, make([]byte, 2*2*3), ErrBufferLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(&buf, tc.w, tc.h, tc.pix)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, buf.Len(), "nothing written on precondition failure")
		})
	}
}

func TestReadChunks_Corruption(t *testing.T) {
	out, err := EncodeBytes(4, 4, gradient(4, 4))
	require.NoError(t, err)

	t.Run("signature", func(t *testing.T) {
		bad := append([]byte(nil), out...)
		bad[1] = 'Q'
		_, err := ReadChunks(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrSignature)
	})

	t.Run("payload bit flip", func(t *testing.T) {
		bad := append([]byte(nil), out...)
		bad[8+8] ^= 0x01 // first IHDR payload byte
		_, err := ReadChunks(bytes.NewReader(bad))
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := ReadChunks(bytes.NewReader(out[:len(out)-6]))
		assert.ErrorIs(t, err, ErrTruncated)
	})
}

func TestReadRawChunks_ForgedLength(t *testing.T) {
	var in bytes.Buffer
	in.Write(Signature[:])
	in.Write([]byte{0x7F, 0xFF, 0xFF, 0xF0})
	in.WriteString(TypeIDAT)
	in.WriteString("only a few bytes")

	chunks, err := ReadRawChunks(&in)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Empty(t, chunks)

	in.Reset()
	in.Write(Signature[:])
	in.Write([]byte{0x80, 0, 0, 0})
	in.WriteString(TypeIDAT)
	_, err = ReadRawChunks(&in)
	assert.ErrorContains(t, err, "out of range")
}

func TestReadRawChunks_EmptyPayload(t *testing.T) {
	data, err := EncodeBytes(1, 1, []byte{1, 2, 3, 4})
	require.NoError(t, err)

	chunks, err := ReadRawChunks(bytes.NewReader(data))
	require.NoError(t, err)
	last := chunks[len(chunks)-1]
	assert.Equal(t, TypeIEND, last.Type)
	assert.Empty(t, last.Data)
	assert.True(t, last.Valid())
}

func TestHeader_MarshalParse(t *testing.T) {
	h := Header{Width: 128, Height: 48, BitDepth: 8, ColorType: 6}
	b, err := h.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, 13)

	got, err := ParseHeader(b)
	require.NoError(t, err)
	assert.Equal(t, h, got)

	_, err = ParseHeader(b[:12])
	assert.Error(t, err)
}
