package messages

import (
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{
			name: "board post",
			frame: &Frame{
				Type:      FrameTypeServerPost,
				ChannelID: "games",
				MessageID: "3f1b0c52-1d8e-4c63-9d0e-6d1c6c2d5e11",
				Author:    "snakebot",
				Text:      strings.Repeat(":black_large_square:", 80) + "\n\u2800",
			},
		},
		{
			name: "reaction",
			frame: &Frame{
				Type:      FrameTypeClientReaction,
				ChannelID: "games",
				MessageID: "m1",
				Symbol:    "\u2b06\ufe0f",
			},
		},
		{
			name:  "empty fields",
			frame: &Frame{Type: FrameTypeClientJoin},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeFrame(tt.frame)
			require.NoError(t, err)

			got, err := DeserializeFrame(b)
			require.NoError(t, err)
			assert.Equal(t, tt.frame, got)
		})
	}
}

func TestDeserializeFrame_rejectsGarbage(t *testing.T) {
	_, err := DeserializeFrame([]byte("definitely not zstd"))
	assert.Error(t, err)

	_, err = DeserializeFrameFlatbuffer([]byte{0x01})
	assert.Error(t, err)

	_, err = DeserializeFrameFlatbuffer([]byte{0xff, 0xff, 0xff, 0x7f, 0x00, 0x00})
	assert.Error(t, err)
}

func TestSerializeFrame_compressesBoards(t *testing.T) {
	frame := &Frame{Type: FrameTypeServerEdit, Text: strings.Repeat(":black_large_square:", 95)}
	raw, err := SerializeFrameFlatbuffer(frame)
	require.NoError(t, err)
	compressed, err := SerializeFrame(frame)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(raw)/4)
}

func TestDeserializeFrame_limitsDecodedSize(t *testing.T) {
	// a few hundred bytes on the wire that expand to 8 MiB
	bomb := encoder.EncodeAll(make([]byte, 8<<20), nil)
	require.Less(t, len(bomb), 64*1024)

	_, err := DeserializeFrame(bomb)
	require.Error(t, err)
	assert.True(t, errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded), err.Error())
}

func TestSerializeFrame_rejectsOversizedFrame(t *testing.T) {
	_, err := SerializeFrame(&Frame{Type: FrameTypeServerPost, Text: strings.Repeat("x", MaxDecodedFrameSize)})
	assert.Error(t, err)
}
