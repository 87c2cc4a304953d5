package codec

import (
	"fmt"
	"math/big"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"go.flow.remotecore.io/remote/schema"
)

// EncodeValue renders a DynamicValue as a JSON tagged-sum tree, the runtime
// counterpart of EncodeSchema. Primitive payloads carry
// enough of their own Tag to self-describe on decode; composite shapes
// recurse.
func EncodeValue(v schema.DynamicValue) (string, error) {
	switch val := v.(type) {
	case schema.Primitive:
		return taggedObj("Primitive", func(json string) (string, error) {
			json, err := sjson.Set(json, "value.tag", string(val.Tag))
			if err != nil {
				return "", err
			}
			raw, err := encodeRaw(val.Tag, val.Raw)
			if err != nil {
				return "", err
			}
			return sjson.SetRaw(json, "value.raw", raw)
		})
	case schema.Some:
		return taggedValue("Some", val.Value)
	case schema.None:
		return taggedString("None", "")
	case schema.Left:
		return taggedValue("Left", val.Value)
	case schema.Right:
		return taggedValue("Right", val.Value)
	case schema.Tuple:
		return taggedObj("Tuple", func(json string) (string, error) {
			json, err := setEncodedValue(json, "value.a", val.A)
			if err != nil {
				return "", err
			}
			return setEncodedValue(json, "value.b", val.B)
		})
	case schema.Sequence:
		return taggedObj("Sequence", func(json string) (string, error) {
			return setEncodedValueList(json, "value", val.Items)
		})
	case schema.Set:
		return taggedObj("Set", func(json string) (string, error) {
			return setEncodedValueList(json, "value", val.Items)
		})
	case schema.Map:
		return taggedObj("Map", func(json string) (string, error) {
			entries := "[]"
			for i, e := range val.Entries {
				k, err := EncodeValue(e.Key)
				if err != nil {
					return "", err
				}
				vv, err := EncodeValue(e.Value)
				if err != nil {
					return "", err
				}
				entries, err = sjson.SetRaw(entries, fmt.Sprintf("%d", i), fmt.Sprintf(`{"key":%s,"value":%s}`, k, vv))
				if err != nil {
					return "", err
				}
			}
			return sjson.SetRaw(json, "value", entries)
		})
	case schema.Record:
		return taggedObj("Record", func(json string) (string, error) {
			json, err := sjson.Set(json, "value.name", val.Name)
			if err != nil {
				return "", err
			}
			fields := "[]"
			for i, f := range val.Fields {
				enc, err := EncodeValue(f.Value)
				if err != nil {
					return "", err
				}
				fields, err = sjson.SetRaw(fields, fmt.Sprintf("%d", i), fmt.Sprintf(`{"name":%q,"value":%s}`, f.Name, enc))
				if err != nil {
					return "", err
				}
			}
			return sjson.SetRaw(json, "value.fields", fields)
		})
	case schema.Enum:
		return taggedObj("Enum", func(json string) (string, error) {
			json, err := sjson.Set(json, "value.name", val.Case)
			if err != nil {
				return "", err
			}
			return setEncodedValue(json, "value.payload", val.Payload)
		})
	default:
		return "", fmt.Errorf("codec: unknown value type %T", v)
	}
}

func taggedValue(caseName string, v schema.DynamicValue) (string, error) {
	enc, err := EncodeValue(v)
	if err != nil {
		return "", err
	}
	json, err := sjson.Set("{}", "case", caseName)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(json, "value", enc)
}

func setEncodedValue(json, path string, v schema.DynamicValue) (string, error) {
	enc, err := EncodeValue(v)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(json, path, enc)
}

func setEncodedValueList(json, path string, items []schema.DynamicValue) (string, error) {
	arr := "[]"
	for i, item := range items {
		enc, err := EncodeValue(item)
		if err != nil {
			return "", err
		}
		arr, err = sjson.SetRaw(arr, fmt.Sprintf("%d", i), enc)
		if err != nil {
			return "", err
		}
	}
	return sjson.SetRaw(json, path, arr)
}

// scalarJSON renders a single Go scalar as JSON text by setting it into a
// throwaway field and reading the field's raw text back out, since sjson
// operates on a document path rather than a bare value.
func scalarJSON(v any) (string, error) {
	wrapped, err := sjson.Set("{}", "v", v)
	if err != nil {
		return "", err
	}
	return gjson.Get(wrapped, "v").Raw, nil
}

// encodeRaw renders a Primitive's Go-typed Raw payload as a JSON scalar,
// dispatching on Tag since Raw's concrete Go type varies by tag
// (schema.Primitive's doc comment enumerates the representations).
func encodeRaw(tag schema.PrimitiveTag, raw any) (string, error) {
	switch tag {
	case schema.Instant:
		return scalarJSON(raw.(time.Time).Format(time.RFC3339Nano))
	case schema.Duration:
		return scalarJSON(raw.(time.Duration).String())
	case schema.BigDecimal:
		return scalarJSON(raw.(decimal.Decimal).String())
	case schema.BigInt:
		return scalarJSON(raw.(*big.Int).String())
	case schema.Char:
		return scalarJSON(string(raw.(rune)))
	case schema.URI:
		return scalarJSON(raw.(*url.URL).String())
	case schema.Throwable:
		if err, ok := raw.(error); ok {
			return scalarJSON(err.Error())
		}
		return scalarJSON(fmt.Sprintf("%v", raw))
	case schema.ChronoUnit:
		return scalarJSON(string(raw.(schema.PrimitiveTag)))
	default:
		return scalarJSON(raw)
	}
}

// DecodeValue parses a value previously produced by EncodeValue.
func DecodeValue(json string) (schema.DynamicValue, error) {
	r := gjson.Parse(json)
	caseName := r.Get("case").String()
	value := r.Get("value")
	switch caseName {
	case "Primitive":
		tag := schema.PrimitiveTag(value.Get("tag").String())
		raw, err := decodeRaw(tag, value.Get("raw"))
		if err != nil {
			return nil, err
		}
		return schema.Primitive{Tag: tag, Raw: raw}, nil
	case "Some":
		inner, err := DecodeValue(value.Raw)
		if err != nil {
			return nil, err
		}
		return schema.Some{Value: inner}, nil
	case "None":
		return schema.None{}, nil
	case "Left":
		inner, err := DecodeValue(value.Raw)
		if err != nil {
			return nil, err
		}
		return schema.Left{Value: inner}, nil
	case "Right":
		inner, err := DecodeValue(value.Raw)
		if err != nil {
			return nil, err
		}
		return schema.Right{Value: inner}, nil
	case "Tuple":
		a, err := DecodeValue(value.Get("a").Raw)
		if err != nil {
			return nil, err
		}
		b, err := DecodeValue(value.Get("b").Raw)
		if err != nil {
			return nil, err
		}
		return schema.Tuple{A: a, B: b}, nil
	case "Sequence":
		items, err := decodeValueList(value)
		if err != nil {
			return nil, err
		}
		return schema.Sequence{Items: items}, nil
	case "Set":
		items, err := decodeValueList(value)
		if err != nil {
			return nil, err
		}
		return schema.Set{Items: items}, nil
	case "Map":
		var entries []schema.MapEntry
		var decodeErr error
		value.ForEach(func(_, e gjson.Result) bool {
			k, err := DecodeValue(e.Get("key").Raw)
			if err != nil {
				decodeErr = err
				return false
			}
			v, err := DecodeValue(e.Get("value").Raw)
			if err != nil {
				decodeErr = err
				return false
			}
			entries = append(entries, schema.MapEntry{Key: k, Value: v})
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return schema.Map{Entries: entries}, nil
	case "Record":
		var fields []schema.RecordField
		var decodeErr error
		value.Get("fields").ForEach(func(_, f gjson.Result) bool {
			v, err := DecodeValue(f.Get("value").Raw)
			if err != nil {
				decodeErr = err
				return false
			}
			fields = append(fields, schema.RecordField{Name: f.Get("name").String(), Value: v})
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return schema.Record{Name: value.Get("name").String(), Fields: fields}, nil
	case "Enum":
		payload, err := DecodeValue(value.Get("payload").Raw)
		if err != nil {
			return nil, err
		}
		return schema.Enum{Case: value.Get("name").String(), Payload: payload}, nil
	default:
		return nil, fmt.Errorf("codec: unknown value case %q", caseName)
	}
}

func decodeValueList(arr gjson.Result) ([]schema.DynamicValue, error) {
	var items []schema.DynamicValue
	var decodeErr error
	arr.ForEach(func(_, item gjson.Result) bool {
		v, err := DecodeValue(item.Raw)
		if err != nil {
			decodeErr = err
			return false
		}
		items = append(items, v)
		return true
	})
	return items, decodeErr
}

func decodeRaw(tag schema.PrimitiveTag, raw gjson.Result) (any, error) {
	switch tag {
	case schema.Unit:
		return struct{}{}, nil
	case schema.Bool:
		return raw.Bool(), nil
	case schema.Byte:
		return byte(raw.Int()), nil
	case schema.Short:
		return int16(raw.Int()), nil
	case schema.Int:
		return int32(raw.Int()), nil
	case schema.Long:
		return raw.Int(), nil
	case schema.Float:
		return float32(raw.Float()), nil
	case schema.Double:
		return raw.Float(), nil
	case schema.BigDecimal:
		return decimal.NewFromString(raw.String())
	case schema.BigInt:
		x, ok := new(big.Int).SetString(raw.String(), 10)
		if !ok {
			return nil, fmt.Errorf("codec: invalid BigInt literal %q", raw.String())
		}
		return x, nil
	case schema.Char:
		r := []rune(raw.String())
		if len(r) == 0 {
			return rune(0), nil
		}
		return r[0], nil
	case schema.String:
		return raw.String(), nil
	case schema.Instant:
		return time.Parse(time.RFC3339Nano, raw.String())
	case schema.Duration:
		return time.ParseDuration(raw.String())
	case schema.ChronoUnit:
		return schema.PrimitiveTag(raw.String()), nil
	case schema.Throwable:
		return fmt.Errorf("%s", raw.String()), nil
	case schema.URI:
		return url.Parse(raw.String())
	default:
		return nil, fmt.Errorf("codec: unknown primitive tag %q", tag)
	}
}
