package entry

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodePayload serializes a journal payload as a protobuf Struct.
// Values must be ones structpb.NewValue accepts.
func EncodePayload(fields map[string]any) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("journal payload: %w", err)
	}
	return proto.Marshal(s)
}

// DecodePayload is the inverse of EncodePayload. Numbers come back as
// float64.
func DecodePayload(data []byte) (map[string]any, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("journal payload: %w", err)
	}
	return s.AsMap(), nil
}
