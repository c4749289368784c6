package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
)

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name            string
		input           []string
		expectedCommand string
		expectedArgs    []string
		expectedDebug   bool
	}{
		{
			name:            "global flag before command",
			input:           []string{"-d", "handshake", "--username", "alice"},
			expectedCommand: "handshake",
			expectedArgs:    []string{"--username", "alice"},
			expectedDebug:   true,
		},
		{
			name:            "global flag after command",
			input:           []string{"handshake", "-d", "--username", "alice"},
			expectedCommand: "handshake",
			expectedArgs:    []string{"--username", "alice"},
			expectedDebug:   true,
		},
		{
			name:            "long form at end",
			input:           []string{"params", "--group", "1024", "--debug"},
			expectedCommand: "params",
			expectedArgs:    []string{"--group", "1024"},
			expectedDebug:   true,
		},
		{
			name:            "no global flag",
			input:           []string{"register", "--username", "alice"},
			expectedCommand: "register",
			expectedArgs:    []string{"--username", "alice"},
		},
		{
			name:            "command only",
			input:           []string{"client-ephemeral"},
			expectedCommand: "client-ephemeral",
			expectedArgs:    []string{},
		},
		{
			name:            "top level help",
			input:           []string{"--help"},
			expectedCommand: "--help",
			expectedArgs:    []string{},
		},
		{
			name:            "command help stays with command",
			input:           []string{"params", "--help"},
			expectedCommand: "params",
			expectedArgs:    []string{"--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clicontext.SetDebug(false)

			args, command := parseGlobalFlags(tt.input)

			assert.Equal(t, tt.expectedCommand, command)
			assert.Equal(t, tt.expectedArgs, args)
			assert.Equal(t, tt.expectedDebug, clicontext.Debug())
		})
	}
}
