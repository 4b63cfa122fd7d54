package asset

import (
	"fmt"
	"strings"
)

// ValueType is the declared type of a parameter. Values match the platform's serialized enum.
type ValueType int

const (
	Int   ValueType = 0
	Float ValueType = 1
	Bool  ValueType = 2
)

func (t ValueType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// MarshalText encodes the type by name.
func (t ValueType) MarshalText() ([]byte, error) {
	switch t {
	case Int, Float, Bool:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid value type %d", int(t))
	}
}

// UnmarshalText decodes a type name, see ParseValueType.
func (t *ValueType) UnmarshalText(b []byte) error {
	v, err := ParseValueType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseValueType converts "bool", "int" or "float" (case-insensitive) to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return Int, nil
	case "float":
		return Float, nil
	case "bool", "boolean":
		return Bool, nil
	default:
		return 0, fmt.Errorf("invalid value type %q", s)
	}
}

// Parameter declares a named value tracked by the avatar runtime.
// All types are stored as float; bools encode as 1.0 and 0.0.
type Parameter struct {
	Name          string    `json:"name"`
	ValueType     ValueType `json:"valueType"`
	DefaultValue  float32   `json:"defaultValue"`
	Saved         bool      `json:"saved"`
	NetworkSynced bool      `json:"networkSynced"`
}

// Bits returns the sync cost of the parameter type.
func (p Parameter) Bits() int {
	switch p.ValueType {
	case Bool:
		return 1
	case Int, Float:
		return 8
	default:
		return 0
	}
}
