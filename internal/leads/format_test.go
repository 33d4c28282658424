package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "5551234567", want: "(555) 123-4567"},
		{in: "555-123-4567", want: "(555) 123-4567"},
		{in: "(555) 123 4567", want: "(555) 123-4567"},
		{in: "123", want: "123"},
		{in: "+1 555 123 4567", want: "+1 555 123 4567"},
		{in: "", want: ""},
		{in: "call me", want: "call me"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.in))
		})
	}
}
