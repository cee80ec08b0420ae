package messages

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

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
	decoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
	}
}

// Message table layout
const (
	messageFieldType = iota
	messageFieldTick
	messageFieldPayload
	messageFieldCount
)

// SerializeMessage encodes a message as a zstd compressed flatbuffer.
func SerializeMessage(m *Message) ([]byte, error) {
	b := SerializeMessageFlatbuffer(m)
	return encoder.EncodeAll(b, make([]byte, 0, len(b))), nil
}

// SerializeMessageFlatbuffer builds the message table. The payload stays JSON.
func SerializeMessageFlatbuffer(m *Message) []byte {
	builder := flatbuffers.NewBuilder(64 + len(m.Payload))
	payload := builder.CreateByteVector(m.Payload)
	messageType := builder.CreateString(m.Type)

	builder.StartObject(messageFieldCount)
	builder.PrependUOffsetTSlot(messageFieldType, messageType, 0)
	builder.PrependUint64Slot(messageFieldTick, m.Tick, 0)
	builder.PrependUOffsetTSlot(messageFieldPayload, payload, 0)
	offset := builder.EndObject()
	builder.Finish(offset)

	return builder.FinishedBytes()
}

// DeserializeMessage decodes a message produced by SerializeMessage.
func DeserializeMessage(data []byte) (*Message, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

// DeserializeMessageFlatbuffer reads a message table built by SerializeMessageFlatbuffer.
func DeserializeMessageFlatbuffer(b []byte) (message *Message, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	n := flatbuffers.GetUOffsetT(b)
	if int(n)+flatbuffers.SizeSOffsetT > len(b) {
		return nil, fmt.Errorf("root offset %d out of range", n)
	}

	// out of range offsets inside a corrupt table index past the buffer
	defer func() {
		if r := recover(); r != nil {
			message, err = nil, fmt.Errorf("malformed message table: %v", r)
		}
	}()

	t := &flatbuffers.Table{Bytes: b, Pos: n}
	message = &Message{}
	if o := fieldOffset(t, messageFieldType); o != 0 {
		message.Type = t.String(o + t.Pos)
	}
	if o := fieldOffset(t, messageFieldTick); o != 0 {
		message.Tick = t.GetUint64(o + t.Pos)
	}
	if o := fieldOffset(t, messageFieldPayload); o != 0 {
		payload := t.ByteVector(o + t.Pos)
		message.Payload = make([]byte, len(payload))
		copy(message.Payload, payload)
	}

	return message, nil
}

func fieldOffset(t *flatbuffers.Table, slot int) flatbuffers.UOffsetT {
	return flatbuffers.UOffsetT(t.Offset(flatbuffers.VOffsetT(flatbuffers.VtableMetadataFields+slot) * flatbuffers.SizeVOffsetT))
}
