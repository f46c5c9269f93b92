package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := Config{ServerURL: "http://default", RequestTimeout: 1500 * time.Millisecond}

	tests := []struct {
		name        string
		args        []string
		want        Config
		expectPanic bool
	}{
		{
			name: "server and timeout",
			args: []string{"-a", "http://10.0.0.1:3001", "-t", "30"},
			want: Config{ServerURL: "http://10.0.0.1:3001", RequestTimeout: 30 * time.Second},
		},
		{
			name: "timeout untouched without -t",
			args: []string{"-c", "cli.json", "-a", "http://x"},
			want: Config{ServerURL: "http://x", RequestTimeout: 1500 * time.Millisecond},
		},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}
