// Package codec implements the wire serialization contract: a reified
// Schema AST and a tagged-sum Expression tree, both encoded as
// `{"case": <name>, "value": <payload>}` JSON via tidwall/gjson and
// tidwall/sjson. A tagged variant tree has no fixed struct shape for
// encoding/json tags to bind to, so the codec builds and reads paths
// directly instead.
package codec

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"go.flow.remotecore.io/remote/schema"
)

// EncodeSchema renders s as a JSON tagged-sum tree. Transform nodes reify
// only their inner schema plus Name; the transform functions never travel
// on the wire.
func EncodeSchema(s schema.Schema) (string, error) {
	switch st := s.(type) {
	case schema.PrimitiveSchema:
		return taggedString("Primitive", string(st.Tag))
	case schema.OptionSchema:
		return taggedSchema("Option", st.Inner)
	case schema.EitherSchema:
		return taggedObj("Either", func(json string) (string, error) {
			json, err := setEncodedSchema(json, "value.left", st.Left)
			if err != nil {
				return "", err
			}
			return setEncodedSchema(json, "value.right", st.Right)
		})
	case schema.TupleSchema:
		return taggedObj("Tuple", func(json string) (string, error) {
			json, err := setEncodedSchema(json, "value.a", st.A)
			if err != nil {
				return "", err
			}
			return setEncodedSchema(json, "value.b", st.B)
		})
	case schema.SequenceSchema:
		return taggedSchema("Sequence", st.Elem)
	case schema.MapSchema:
		return taggedObj("Map", func(json string) (string, error) {
			json, err := setEncodedSchema(json, "value.key", st.Key)
			if err != nil {
				return "", err
			}
			return setEncodedSchema(json, "value.value", st.Value)
		})
	case schema.SetSchema:
		return taggedSchema("Set", st.Elem)
	case schema.RecordSchema:
		return taggedObj("Record", func(json string) (string, error) {
			json, err := sjson.Set(json, "value.name", st.Name)
			if err != nil {
				return "", err
			}
			fields := "[]"
			for i, f := range st.Fields {
				enc, err := EncodeSchema(f.Type)
				if err != nil {
					return "", err
				}
				fields, err = sjson.SetRaw(fields, fmt.Sprintf("%d", i), fmt.Sprintf(`{"name":%q,"type":%s}`, f.Name, enc))
				if err != nil {
					return "", err
				}
			}
			return sjson.SetRaw(json, "value.fields", fields)
		})
	case schema.EnumSchema:
		return taggedObj("Enum", func(json string) (string, error) {
			json, err := sjson.Set(json, "value.name", st.Name)
			if err != nil {
				return "", err
			}
			cases := "[]"
			for i, c := range st.Cases {
				enc, err := EncodeSchema(c.Payload)
				if err != nil {
					return "", err
				}
				cases, err = sjson.SetRaw(cases, fmt.Sprintf("%d", i), fmt.Sprintf(`{"name":%q,"payload":%s}`, c.Name, enc))
				if err != nil {
					return "", err
				}
			}
			return sjson.SetRaw(json, "value.cases", cases)
		})
	case schema.TransformSchema:
		return taggedObj("Transform", func(json string) (string, error) {
			json, err := sjson.Set(json, "value.name", st.Name)
			if err != nil {
				return "", err
			}
			return setEncodedSchema(json, "value.inner", st.Inner)
		})
	case schema.FailSchema:
		return taggedString("Fail", st.Msg)
	default:
		return "", fmt.Errorf("codec: unknown schema type %T", s)
	}
}

func taggedString(caseName, value string) (string, error) {
	json, err := sjson.Set("{}", "case", caseName)
	if err != nil {
		return "", err
	}
	return sjson.Set(json, "value", value)
}

func taggedSchema(caseName string, inner schema.Schema) (string, error) {
	json, err := sjson.Set("{}", "case", caseName)
	if err != nil {
		return "", err
	}
	return setEncodedSchema(json, "value", inner)
}

func taggedObj(caseName string, fill func(json string) (string, error)) (string, error) {
	json, err := sjson.Set("{}", "case", caseName)
	if err != nil {
		return "", err
	}
	json, err = sjson.SetRaw(json, "value", "{}")
	if err != nil {
		return "", err
	}
	return fill(json)
}

func setEncodedSchema(json, path string, s schema.Schema) (string, error) {
	enc, err := EncodeSchema(s)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(json, path, enc)
}

// DecodeSchema parses a schema previously produced by EncodeSchema.
func DecodeSchema(json string) (schema.Schema, error) {
	r := gjson.Parse(json)
	caseName := r.Get("case").String()
	value := r.Get("value")
	switch caseName {
	case "Primitive":
		return schema.PrimitiveSchema{Tag: schema.PrimitiveTag(value.String())}, nil
	case "Option":
		inner, err := DecodeSchema(value.Raw)
		if err != nil {
			return nil, err
		}
		return schema.OptionSchema{Inner: inner}, nil
	case "Either":
		left, err := DecodeSchema(value.Get("left").Raw)
		if err != nil {
			return nil, err
		}
		right, err := DecodeSchema(value.Get("right").Raw)
		if err != nil {
			return nil, err
		}
		return schema.EitherSchema{Left: left, Right: right}, nil
	case "Tuple":
		a, err := DecodeSchema(value.Get("a").Raw)
		if err != nil {
			return nil, err
		}
		b, err := DecodeSchema(value.Get("b").Raw)
		if err != nil {
			return nil, err
		}
		return schema.TupleSchema{A: a, B: b}, nil
	case "Sequence":
		inner, err := DecodeSchema(value.Raw)
		if err != nil {
			return nil, err
		}
		return schema.SequenceSchema{Elem: inner}, nil
	case "Map":
		key, err := DecodeSchema(value.Get("key").Raw)
		if err != nil {
			return nil, err
		}
		val, err := DecodeSchema(value.Get("value").Raw)
		if err != nil {
			return nil, err
		}
		return schema.MapSchema{Key: key, Value: val}, nil
	case "Set":
		inner, err := DecodeSchema(value.Raw)
		if err != nil {
			return nil, err
		}
		return schema.SetSchema{Elem: inner}, nil
	case "Record":
		var fields []schema.Field
		var decodeErr error
		value.Get("fields").ForEach(func(_, f gjson.Result) bool {
			t, err := DecodeSchema(f.Get("type").Raw)
			if err != nil {
				decodeErr = err
				return false
			}
			fields = append(fields, schema.Field{Name: f.Get("name").String(), Type: t})
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return schema.RecordSchema{Name: value.Get("name").String(), Fields: fields}, nil
	case "Enum":
		var cases []schema.Case
		var decodeErr error
		value.Get("cases").ForEach(func(_, c gjson.Result) bool {
			p, err := DecodeSchema(c.Get("payload").Raw)
			if err != nil {
				decodeErr = err
				return false
			}
			cases = append(cases, schema.Case{Name: c.Get("name").String(), Payload: p})
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return schema.EnumSchema{Name: value.Get("name").String(), Cases: cases}, nil
	case "Transform":
		inner, err := DecodeSchema(value.Get("inner").Raw)
		if err != nil {
			return nil, err
		}
		return schema.TransformSchema{Name: value.Get("name").String(), Inner: inner}, nil
	case "Fail":
		return schema.FailSchema{Msg: value.String()}, nil
	default:
		return nil, fmt.Errorf("codec: unknown schema case %q", caseName)
	}
}
