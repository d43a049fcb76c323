package eupathdb

import (
	"errors"
	"testing"
)

func TestResolvePrefix(t *testing.T) {

	tests := []struct {
		name        string
		provider    string
		expected    string
		shouldError bool
	}{
		{
			name:     "AliasedProvider",
			provider: "MicrosporidiaDB",
			expected: "micro",
		},
		{
			name:     "AliasedProviderMbio",
			provider: "microbiomedb",
			expected: "mbio",
		},
		{
			name:     "SameNameProvider",
			provider: "TriTrypDB",
			expected: "tritrypdb",
		},
		{
			name:        "UnknownProvider",
			provider:    "unknownDB",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePrefix(tt.provider)

			if tt.shouldError {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Fatalf("expected ErrUnknownProvider, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Fatalf("got %q, expected %q", got, tt.expected)
			}
		})
	}
}
