package messages

import (
	"fmt"

	framefb "github.com/cbodonnell/chatsnake/flatbuffers/frame"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// MaxDecodedFrameSize bounds a frame after decompression. Boards are
// capped at 2000 bytes per message, so real frames stay far below it.
const MaxDecodedFrameSize = 256 * 1024

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
	}
	decoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedFrameSize))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
	}
}

// SerializeFrame encodes a frame as a zstd compressed flatbuffer.
func SerializeFrame(f *Frame) ([]byte, error) {
	b, err := SerializeFrameFlatbuffer(f)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize frame: %v", err)
	}
	if len(b) > MaxDecodedFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds %d bytes", len(b), MaxDecodedFrameSize)
	}
	return encoder.EncodeAll(b, nil), nil
}

// DeserializeFrame decodes a frame written by SerializeFrame.
func DeserializeFrame(data []byte) (*Frame, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress frame: %w", err)
	}

	f, err := DeserializeFrameFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize frame: %v", err)
	}
	return f, nil
}

func SerializeFrameFlatbuffer(f *Frame) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("frame is nil")
	}
	builder := flatbuffers.NewBuilder(64 + len(f.Text))

	channelID := builder.CreateString(f.ChannelID)
	messageID := builder.CreateString(f.MessageID)
	author := builder.CreateString(f.Author)
	text := builder.CreateString(f.Text)
	symbol := builder.CreateString(f.Symbol)

	framefb.FrameStart(builder)
	framefb.FrameAddType(builder, byte(f.Type))
	framefb.FrameAddChannelId(builder, channelID)
	framefb.FrameAddMessageId(builder, messageID)
	framefb.FrameAddAuthor(builder, author)
	framefb.FrameAddText(builder, text)
	framefb.FrameAddSymbol(builder, symbol)
	frameOffset := framefb.FrameEnd(builder)
	builder.Finish(frameOffset)

	return builder.FinishedBytes(), nil
}

// DeserializeFrameFlatbuffer reads a frame table. Malformed input is
// reported as an error rather than a panic.
func DeserializeFrameFlatbuffer(b []byte) (f *Frame, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("frame too short: %d bytes", len(b))
	}
	defer func() {
		if r := recover(); r != nil {
			f = nil
			err = fmt.Errorf("malformed frame: %v", r)
		}
	}()

	fb := framefb.GetRootAsFrame(b, 0)
	f = &Frame{
		Type:      FrameType(fb.Type()),
		ChannelID: string(fb.ChannelId()),
		MessageID: string(fb.MessageId()),
		Author:    string(fb.Author()),
		Text:      string(fb.Text()),
		Symbol:    string(fb.Symbol()),
	}
	return f, nil
}
