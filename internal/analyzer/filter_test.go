package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name     string
		includes []string
		excludes []string
		fqn      string
		want     bool
	}{
		{"no patterns match everything", nil, nil, "com.example.UserService", true},
		{"include package subtree", []string{"com.example.service.*"}, nil, "com.example.service.UserService", true},
		{"include misses other package", []string{"com.example.service.*"}, nil, "com.example.billing.InvoiceService", false},
		{"include by suffix", []string{"*Service"}, nil, "com.example.billing.InvoiceService", true},
		{"exclude wins over include", []string{"com.example.*"}, []string{"*.InvoiceService"}, "com.example.InvoiceService", false},
		{"exclude alone", nil, []string{"com.example.internal.*"}, "com.example.internal.Helper", false},
		{"literal dots are not wildcards", []string{"com.example.UserService"}, nil, "comXexampleXUserService", false},
		{"exact include", []string{"com.example.UserService"}, nil, "com.example.UserService", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.includes, tt.excludes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(tt.fqn))
		})
	}
}

func TestFilterRejectsEmptyPattern(t *testing.T) {
	_, err := NewFilter([]string{"  "}, nil)
	require.Error(t, err)

	_, err = NewFilter(nil, []string{""})
	require.Error(t, err)
}
