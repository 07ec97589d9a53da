package config

import "fmt"

// VaultSettings holds the location of the local key vault.
type VaultSettings struct {
	KeyDir string `mapstructure:"key_dir" validate:"required"`
}

// Validate checks that all fields in VaultSettings are valid
func (s *VaultSettings) Validate() error {
	if err := validateStruct(s); err != nil {
		return fmt.Errorf("validation failed for VaultSettings: %w", err)
	}
	return nil
}
