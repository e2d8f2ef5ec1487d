package config

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the lazyctl configuration file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		// Expand the root struct instead of referencing it
		ExpandedStruct: true,
	}
	schema := r.Reflect(&Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "lazyctl configuration"
	schema.Description = "Configuration schema for the lazyctl probe"
	return schema
}
