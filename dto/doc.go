// Package dto maps between plain keyed data (parsed JSON or YAML, database
// documents) and registered DTO structs, recursively, in both directions.
//
// A DTO type is a struct registered with a Registry. Registration compiles a
// schema once: the field table in declaration order, bound accessors and
// mutators, and element annotations for sequences of DTOs.
//
//	type Address struct {
//		City string `dto:"city"`
//	}
//
//	type Person struct {
//		Name    string    `dto:"name"`
//		Address *Address  `dto:"address"`
//		Tags    []string  `dto:"tags"`
//		Past    []Address `dto:"past_addresses"`
//	}
//
//	dto.MustRegister[Address](dto.Default)
//	dto.MustRegister[Person](dto.Default)
//
//	p, err := dto.FromData[Person](dto.Data{"name": "A", "address": dto.Data{"city": "X"}})
//	data, err := dto.ToData(p)
//
// # Field keys
//
// The key of a field is taken from the `dto` tag, then from the `json` tag,
// then from the Go field name. A "-" key excludes the field. The tag option
// elem=TypeName annotates a []any field with the registered element type.
//
// # Accessors and mutators
//
// Unless Explicit is given, registration binds methods on *T named after the
// key (user_name -> GetUserName, SetUserName). Getter and Setter options bind
// functions explicitly. A bound mutator always wins over structural decoding
// and a bound accessor's result is emitted as is.
//
// # Decoding rules
//
// Unknown keys are skipped. Nested DTO fields are decoded recursively.
// Sequence fields whose element type is a registered DTO are decoded item by
// item in order. Everything else is assigned best-effort without reporting
// mismatches.
//
// # Encoding rules
//
// Fields are emitted in declaration order. Nested DTO values are encoded
// recursively. In sequence fields only DTO items are kept unless the mapper
// is configured with KeepForeignItems.
//
// Generated registrations (see cmd/dtomap-gen) call the same API with
// Explicit, so no method lookup happens at run time.
package dto
