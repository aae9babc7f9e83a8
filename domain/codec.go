package domain

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Codec turns a Message into bytes and back.
// Swapping the codec does not change anything else in the pipeline.
type Codec interface {
	Name() string
	Marshal(m Message) ([]byte, error)
	Unmarshal(data []byte) (Message, error)
}

var (
	_ Codec = JSONCodec{}
	_ Codec = ProtoCodec{}
)

// JSONCodec is the baseline codec, always available.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(m Message) ([]byte, error) {
	return json.Marshal(m)
}

func (JSONCodec) Unmarshal(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("json decode: %w", err)
	}
	return m, nil
}

// ProtoCodec encodes a Message as a binary google.protobuf.Struct.
// Payloads go through their JSON form first, so any value the validator
// accepts can be encoded.
type ProtoCodec struct{}

func (ProtoCodec) Name() string { return "proto" }

func (ProtoCodec) Marshal(m Message) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("proto encode: %w", err)
	}
	var fields map[string]any
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("proto encode: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("proto encode: %w", err)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(st)
}

func (ProtoCodec) Unmarshal(data []byte) (Message, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return Message{}, fmt.Errorf("proto decode: %w", err)
	}
	raw, err := json.Marshal(st.AsMap())
	if err != nil {
		return Message{}, fmt.Errorf("proto decode: %w", err)
	}
	return JSONCodec{}.Unmarshal(raw)
}

// CodecByName resolves the CODEC configuration value.
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "proto":
		return ProtoCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
