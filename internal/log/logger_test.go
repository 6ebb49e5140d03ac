package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		env, level string
		want       zerolog.Level
	}{
		{"development", "", zerolog.DebugLevel},
		{"production", "", zerolog.InfoLevel},
		{"production", "debug", zerolog.DebugLevel},
		{"development", "WARN", zerolog.WarnLevel},
		{"development", "error", zerolog.ErrorLevel},
		{"development", "info", zerolog.InfoLevel},
		{"production", "verbose", zerolog.InfoLevel},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, parseLevel(tc.env, tc.level), "env=%s level=%s", tc.env, tc.level)
	}
}
