package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Err())

	d.Warnf(CodeAccessorSignature, "people.Person", "name", "method %s ignored", "GetName")
	assert.False(t, d.HasErrors())
	require.Len(t, d.Warnings, 1)
	assert.Equal(t, "people.Person.name: [accessor-signature] method GetName ignored", d.Warnings[0].String())

	d.Errorf(CodeDuplicateKey, "people.Person", "", "key %q declared twice", "name")
	d.Errorf(CodeNotStruct, "", "", "int is not a struct")
	assert.True(t, d.HasErrors())
	assert.EqualError(t, d.Err(),
		`people.Person: [duplicate-key] key "name" declared twice; [not-struct] int is not a struct`)
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.Warnf(CodeDirective, "x.T", "", "w")
	b.Errorf(CodeUnknownKey, "x.T", "k", "e")

	a.Merge(b)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Errors, 1)
	assert.Equal(t, SeverityError, a.Errors[0].Severity)
	assert.Equal(t, "error", a.Errors[0].Severity.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}
