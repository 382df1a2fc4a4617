package commands

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// JSONSchema restricts cmd to the supported commands in exported tool schemas
func (Name) JSONSchema() *jsonschema.Schema {
	enum := make([]interface{}, 0, len(AllNames()))
	for _, n := range AllNames() {
		enum = append(enum, string(n))
	}
	return &jsonschema.Schema{
		Type:        "string",
		Description: "The command to execute",
		Enum:        enum,
	}
}

// SchemaMapper is a Reflector.Mapper for command arguments. The loosely typed stat
// value becomes number or string.
func SchemaMapper(t reflect.Type) *jsonschema.Schema {
	if t != anyType {
		return nil
	}
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string"},
		},
	}
}
