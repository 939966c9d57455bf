package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"user_name", []string{"user", "name"}},
		{"user-name", []string{"user", "name"}},
		{"customerName", []string{"customer", "Name"}},
		{"CustomerName", []string{"Customer", "Name"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"orderID", []string{"order", "ID"}},
		{"__private__", []string{"private"}},
		{"a", []string{"a"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_name", "UserName"},
		{"userName", "UserName"},
		{"UserName", "UserName"},
		{"user_id", "UserId"},
		{"orderID", "OrderID"},
		{"http_URL", "HttpURL"},
		{"name", "Name"},
		{"tags", "Tags"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Camel(tt.input))
		})
	}
}

func TestAccessorMutator(t *testing.T) {
	assert.Equal(t, "GetUserName", Accessor("user_name"))
	assert.Equal(t, "SetUserName", Mutator("user_name"))
	assert.Equal(t, "GetFoo", Accessor("foo"))
	assert.Equal(t, "SetFoo", Mutator("foo"))
}
