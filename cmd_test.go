package main

import (
	"testing"

	"github.com/carlmjohnson/be"
	"github.com/spf13/cobra"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:   "table format",
			format: "table",
		},
		{
			name:   "json format",
			format: "json",
		},
		{
			name:      "invalid format",
			format:    "yaml",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().StringP("output", "o", tt.format, "Output format: table or json")

			format, err := validateOutputFormat(cmd)
			if tt.expectErr {
				be.Nonzero(t, err)
				return
			}

			be.NilErr(t, err)
			be.Equal(t, tt.format, format)
		})
	}
}
