package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// SpecKind identifica el tipo escalar guardado en un SpecValue
type SpecKind uint8

const (
	SpecString SpecKind = iota + 1
	SpecNumber
	SpecBool
)

// Specifications son las especificaciones técnicas abiertas de un producto
type Specifications map[string]SpecValue

// Clone copia el mapa; los valores son inmutables.
func (s Specifications) Clone() Specifications {
	if s == nil {
		return nil
	}
	out := make(Specifications, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SpecValue es una unión de string | número | booleano
type SpecValue struct {
	kind SpecKind
	str  string
	num  float64
	flag bool
}

var errSpecValueType = errors.New("specification values must be a string, number or boolean")

func StringSpec(s string) SpecValue  { return SpecValue{kind: SpecString, str: s} }
func NumberSpec(n float64) SpecValue { return SpecValue{kind: SpecNumber, num: n} }
func BoolSpec(b bool) SpecValue      { return SpecValue{kind: SpecBool, flag: b} }

func (v SpecValue) Kind() SpecKind { return v.kind }

// Interface devuelve el valor concreto (string, float64 o bool)
func (v SpecValue) Interface() interface{} {
	switch v.kind {
	case SpecString:
		return v.str
	case SpecNumber:
		return v.num
	case SpecBool:
		return v.flag
	}
	return nil
}

func (v SpecValue) String() string {
	switch v.kind {
	case SpecString:
		return v.str
	case SpecNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case SpecBool:
		return strconv.FormatBool(v.flag)
	}
	return ""
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errSpecValueType
	}
	switch data[0] {
	case 'n', '{', '[':
		return errSpecValueType
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringSpec(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolSpec(b)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return errSpecValueType
		}
		*v = NumberSpec(n)
	}
	return nil
}

func (v *SpecValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errSpecValueType
	}
	switch node.Tag {
	case "!!str":
		*v = StringSpec(node.Value)
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = BoolSpec(b)
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = NumberSpec(n)
	default:
		return errSpecValueType
	}
	return nil
}

func (v SpecValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(v.Interface())
}

func (v *SpecValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if s, ok := raw.StringValueOK(); ok {
		*v = StringSpec(s)
		return nil
	}
	if b, ok := raw.BooleanOK(); ok {
		*v = BoolSpec(b)
		return nil
	}
	if n, ok := raw.DoubleOK(); ok {
		*v = NumberSpec(n)
		return nil
	}
	if n, ok := raw.Int32OK(); ok {
		*v = NumberSpec(float64(n))
		return nil
	}
	if n, ok := raw.Int64OK(); ok {
		*v = NumberSpec(float64(n))
		return nil
	}
	return errSpecValueType
}

// Dimensions son las medidas y peso de un producto
type Dimensions struct {
	Width      float64  `json:"width" bson:"width" yaml:"width" binding:"gt=0"`
	Height     float64  `json:"height" bson:"height" yaml:"height" binding:"gt=0"`
	Depth      *float64 `json:"depth,omitempty" bson:"depth,omitempty" yaml:"depth" binding:"omitempty,gt=0"`
	Weight     *float64 `json:"weight,omitempty" bson:"weight,omitempty" yaml:"weight" binding:"omitempty,gt=0"`
	Unit       string   `json:"unit" bson:"unit" yaml:"unit" binding:"omitempty,oneof=mm cm in m"`
	WeightUnit string   `json:"weightUnit" bson:"weight_unit" yaml:"weightUnit" binding:"omitempty,oneof=kg lb g"`
}

func (d Dimensions) withDefaults() Dimensions {
	if d.Unit == "" {
		d.Unit = "cm"
	}
	if d.WeightUnit == "" {
		d.WeightUnit = "kg"
	}
	if d.Depth != nil {
		depth := *d.Depth
		d.Depth = &depth
	}
	if d.Weight != nil {
		weight := *d.Weight
		d.Weight = &weight
	}
	return d
}
