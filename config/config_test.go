package config_test

import (
	"testing"

	"cs-balancer/config"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	withInput := func(mutate func(*config.Config)) config.Config {
		c := config.Default()
		c.Input = "input.csv"
		if mutate != nil {
			mutate(&c)
		}
		return c
	}

	tests := map[string]struct {
		cfg           config.Config
		expectedError error
	}{
		"Defaults_WithInput":   {cfg: withInput(nil)},
		"MissingInput":         {cfg: config.Default(), expectedError: config.ErrMissingInput},
		"InvalidFormat":        {cfg: withInput(func(c *config.Config) { c.Format = "xml" }), expectedError: config.ErrInvalidFormat},
		"InvalidInputFormat":   {cfg: withInput(func(c *config.Config) { c.InputFormat = "toml" }), expectedError: config.ErrInvalidInputFormat},
		"InvalidLogFormat":     {cfg: withInput(func(c *config.Config) { c.LogFormat = "logfmt" }), expectedError: config.ErrInvalidLogFormat},
		"UppercaseLogFormatOK": {cfg: withInput(func(c *config.Config) { c.LogFormat = "JSON" })},
		"InvalidLogLevel":      {cfg: withInput(func(c *config.Config) { c.LogLevel = "chatty" }), expectedError: config.ErrInvalidLogLevel},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolvedInputFormat(t *testing.T) {
	tests := map[string]struct {
		input       string
		inputFormat string
		expected    string
	}{
		"AutoCSV":      {input: "roster.csv", inputFormat: config.InputAuto, expected: config.InputCSV},
		"AutoYAML":     {input: "roster.yml", inputFormat: config.InputAuto, expected: config.InputYAML},
		"AutoJSON":     {input: "ROSTER.JSON", inputFormat: config.InputAuto, expected: config.InputYAML},
		"AutoNoExt":    {input: "roster", inputFormat: config.InputAuto, expected: config.InputCSV},
		"ExplicitYAML": {input: "roster.txt", inputFormat: config.InputYAML, expected: config.InputYAML},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c := config.Config{Input: tt.input, InputFormat: tt.inputFormat}
			assert.Equal(t, tt.expected, c.ResolvedInputFormat())
		})
	}
}
