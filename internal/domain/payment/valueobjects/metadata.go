package valueobjects

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MetadataShape records which wire layout a metadata item was supplied in.
type MetadataShape int

const (
	// MetadataShapeV1 is {"fieldName": ..., "fieldValue": ..., "isPII": ...}.
	MetadataShapeV1 MetadataShape = iota
	// MetadataShapeV2 is {"<name>": "<value>", "isPII": ...}.
	MetadataShapeV2
)

func (s MetadataShape) String() string {
	if s == MetadataShapeV2 {
		return "v2"
	}
	return "v1"
}

const metadataPIIKey = "isPII"

// MetadataItem is one caller-supplied metadata pair. Decoding accepts both
// wire layouts; encoding writes the layout it was decoded from.
type MetadataItem struct {
	Name  string
	Value string
	IsPII *bool
	Shape MetadataShape
}

// NewMetadataItem returns a V1-shaped item without a PII flag.
func NewMetadataItem(name, value string) MetadataItem {
	return MetadataItem{Name: name, Value: value}
}

// WithPII returns a copy of the item flagged as (non-)personal data.
func (m MetadataItem) WithPII(pii bool) MetadataItem {
	m.IsPII = &pii
	return m
}

// V1Metadata is the V1 wire layout of a metadata item.
type V1Metadata struct {
	FieldName  string `json:"fieldName"`
	FieldValue string `json:"fieldValue"`
	IsPII      *bool  `json:"isPII,omitempty"`
}

// V2Metadata is the V2 wire layout of a metadata item. The caller key is
// always written before isPII.
type V2Metadata struct {
	Key   string
	Value string
	IsPII *bool
}

func (m V2Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	key, err := json.Marshal(m.Key)
	if err != nil {
		return nil, err
	}
	value, err := json.Marshal(m.Value)
	if err != nil {
		return nil, err
	}
	buf.WriteByte('{')
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(value)
	if m.IsPII != nil {
		fmt.Fprintf(&buf, `,"%s":%t`, metadataPIIKey, *m.IsPII)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// V1 projects the item onto the V1 wire layout.
func (m MetadataItem) V1() V1Metadata {
	return V1Metadata{FieldName: m.Name, FieldValue: m.Value, IsPII: m.IsPII}
}

// V2 projects the item onto the V2 wire layout.
func (m MetadataItem) V2() V2Metadata {
	return V2Metadata{Key: m.Name, Value: m.Value, IsPII: m.IsPII}
}

func (m MetadataItem) MarshalJSON() ([]byte, error) {
	if m.Shape == MetadataShapeV2 {
		return json.Marshal(m.V2())
	}
	return json.Marshal(m.V1())
}

func (m *MetadataItem) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("metadata item must be a JSON object: %w", err)
	}

	var item MetadataItem
	if raw, ok := fields[metadataPIIKey]; ok {
		var pii bool
		if err := json.Unmarshal(raw, &pii); err != nil {
			return fmt.Errorf("metadata isPII must be a boolean: %w", err)
		}
		item.IsPII = &pii
		delete(fields, metadataPIIKey)
	}

	name, hasName := fields["fieldName"]
	value, hasValue := fields["fieldValue"]
	switch {
	case hasName && hasValue:
		item.Shape = MetadataShapeV1
		item.Name = scalarString(name)
		item.Value = scalarString(value)
	case len(fields) == 1:
		item.Shape = MetadataShapeV2
		for k, v := range fields {
			item.Name = k
			item.Value = scalarString(v)
		}
	default:
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		return fmt.Errorf("unrecognized metadata item shape with keys [%s]", strings.Join(keys, ", "))
	}

	*m = item
	return nil
}

// scalarString renders a JSON scalar as text, unquoting strings.
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
