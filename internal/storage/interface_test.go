package storage

import "testing"

func TestIsPostgresURL(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"postgres://planner@localhost/postboard", true},
		{"postgresql://planner@localhost/postboard", true},
		{"host=localhost dbname=postboard user=planner", true},
		{"  postgres://planner@localhost/postboard", true},
		{"~/.config/postboard/exports.db", false},
		{"/tmp/exports.db", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsPostgresURL(tt.target); got != tt.want {
			t.Errorf("IsPostgresURL(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}
