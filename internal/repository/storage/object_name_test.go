package storage

import "testing"

func TestObjectName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"finance:05", "finance_05.json"},
		{"a/b", "a_b.json"},
		{"plain", "plain.json"},
	}

	for _, tt := range tests {
		if got := objectName(tt.key); got != tt.want {
			t.Errorf("objectName(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
