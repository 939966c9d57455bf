// Package gen provides deterministic Go code generation for DTO registrations.
//
// Generation approach uses text/template + go/format. Each package holding
// directive-marked DTOs gets one file with an init function that registers
// every DTO in the default registry with explicit options:
//
//	dto.MustRegister[Person](dto.Default,
//		dto.Explicit(),
//		dto.Getter("full_name", (*Person).GetFullName),
//		dto.Setter("email", (*Person).SetEmail),
//		dto.ElemOf[Address]("history"),
//	)
//
// Method expressions make a renamed or removed method a compile error
// instead of a silently unbound field.
package gen
