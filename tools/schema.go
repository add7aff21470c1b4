package tools

import "github.com/invopop/jsonschema"

// GenerateSchema derives a JSON Schema from a Go struct type. Inline schemas
// without references keep tool definitions self-contained.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
