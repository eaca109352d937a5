package meta

import (
	"errors"
	"testing"
)

func TestDefaultConfigValues(t *testing.T) {
	c := DefaultConfig()

	if !c.CaseSensitive {
		t.Error("CaseSensitive should be true by default")
	}
	if !c.EnablePrefilter {
		t.Error("EnablePrefilter should be true by default")
	}
	if c.MinLiteralLen != 1 {
		t.Errorf("MinLiteralLen = %d, want 1", c.MinLiteralLen)
	}
	if c.MaxLiterals != 64 {
		t.Errorf("MaxLiterals = %d, want 64", c.MaxLiterals)
	}
}

func TestDefaultConfigPassesValidation(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidateMinLiteralLen(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		wantErr bool
	}{
		{"zero is invalid", 0, true},
		{"negative is invalid", -1, true},
		{"minimum valid (1)", 1, false},
		{"maximum valid (64)", 64, false},
		{"exceeds maximum", 65, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			c.MinLiteralLen = tt.min
			err := c.Validate()

			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error type = %T, want *ConfigError", err)
				} else if cfgErr.Field != "MinLiteralLen" {
					t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, "MinLiteralLen")
				}
			}
		})
	}
}

func TestConfigValidateMaxLiterals(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		wantErr bool
	}{
		{"zero is invalid", 0, true},
		{"minimum valid (1)", 1, false},
		{"typical value", 64, false},
		{"maximum valid (1000)", 1_000, false},
		{"exceeds maximum", 1_001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			c.MaxLiterals = tt.max
			err := c.Validate()

			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error type = %T, want *ConfigError", err)
				} else if cfgErr.Field != "MaxLiterals" {
					t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, "MaxLiterals")
				}
			}
		})
	}
}

func TestConfigValidateSkipsPrefilterFieldsWhenDisabled(t *testing.T) {
	c := Config{CaseSensitive: true, EnablePrefilter: false, MinLiteralLen: 0, MaxLiterals: -5}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() with prefiltering disabled = %v, want nil", err)
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
	want := "retrace: invalid config: MaxLiterals: must be between 1 and 1,000"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
