package docstore

import (
	"fmt"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldPath   = "path"
	fieldValue  = "value"
	fieldExists = "exists"
	fieldKey    = "key"
)

// NewPathRequest builds a request that only names a path (Get, Remove).
func NewPathRequest(path string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldPath: structpb.NewStringValue(path),
	}}
}

// NewValueRequest builds a request carrying a path and a document (Set, Push).
func NewValueRequest(path string, value any) (*structpb.Struct, error) {
	v, err := structpb.NewValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidValue, err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldPath:  structpb.NewStringValue(path),
		fieldValue: v,
	}}, nil
}

// RequestPath extracts and parses the path of a request.
func RequestPath(req *structpb.Struct) (Path, error) {
	v, ok := req.GetFields()[fieldPath]
	if !ok {
		return Path{}, fmt.Errorf("%w: path is missing", common.ErrInvalidPath)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return Path{}, fmt.Errorf("%w: path must be a string", common.ErrInvalidPath)
	}
	return ParsePath(s.StringValue)
}

// RequestValue extracts the document of a Set or Push request.
func RequestValue(req *structpb.Struct) (any, error) {
	v, ok := req.GetFields()[fieldValue]
	if !ok {
		return nil, fmt.Errorf("%w: value is missing", common.ErrInvalidValue)
	}
	return v.AsInterface(), nil
}

// NewGetResponse builds a Get reply. A missing document has exists=false and
// no value.
func NewGetResponse(value any, exists bool) (*structpb.Struct, error) {
	fields := map[string]*structpb.Value{
		fieldExists: structpb.NewBoolValue(exists),
	}
	if exists {
		v, err := structpb.NewValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidValue, err)
		}
		fields[fieldValue] = v
	}
	return &structpb.Struct{Fields: fields}, nil
}

// ParseGetResponse returns the document and whether it exists.
func ParseGetResponse(resp *structpb.Struct) (any, bool) {
	fields := resp.GetFields()
	if !fields[fieldExists].GetBoolValue() {
		return nil, false
	}
	v, ok := fields[fieldValue]
	if !ok {
		return nil, false
	}
	return v.AsInterface(), true
}

// NewSetResponse echoes the document as stored, server values resolved.
func NewSetResponse(value any) (*structpb.Struct, error) {
	v, err := structpb.NewValue(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidValue, err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{fieldValue: v}}, nil
}

// ParseSetResponse returns the stored document, or nil if the server did not
// echo it.
func ParseSetResponse(resp *structpb.Struct) any {
	v, ok := resp.GetFields()[fieldValue]
	if !ok {
		return nil
	}
	return v.AsInterface()
}

// NewPushResponse carries the key the server generated and the stored
// document.
func NewPushResponse(key string, value any) (*structpb.Struct, error) {
	resp, err := NewSetResponse(value)
	if err != nil {
		return nil, err
	}
	resp.Fields[fieldKey] = structpb.NewStringValue(key)
	return resp, nil
}

// ParsePushResponse returns the generated key and the stored document.
func ParsePushResponse(resp *structpb.Struct) (string, any, error) {
	key := resp.GetFields()[fieldKey].GetStringValue()
	if key == "" {
		return "", nil, fmt.Errorf("%w: push response has no key", common.ErrInvalidValue)
	}
	return key, ParseSetResponse(resp), nil
}
