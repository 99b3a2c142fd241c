package config

import (
	"fmt"
	"go/token"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/typetology/pkg/address"
)

// Validate validates the EffectiveConfig values.
func (c *EffectiveConfig) Validate() error {
	if err := validatePackage(c.Package.Value); err != nil {
		return err
	}
	if err := validateGas("gas_price", c.GasPrice.Value); err != nil {
		return err
	}
	if err := validateGas("gas_limit", c.GasLimit.Value); err != nil {
		return err
	}
	if c.Payer.Value != "" {
		if err := validatePayer(c.Payer.Value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFileConfig validates the FileConfig values before merging.
// This is called when loading the config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}

	if cfg.Package != nil {
		if err := validatePackage(*cfg.Package); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}

	network := cfg.networkOrEmpty()
	if network.GasPrice != nil {
		if err := validateGas("gas_price", *network.GasPrice); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}
	if network.GasLimit != nil {
		if err := validateGas("gas_limit", *network.GasLimit); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}
	if network.Payer != nil && *network.Payer != "" {
		if err := validatePayer(*network.Payer); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}

	return nil
}

func validatePackage(name string) error {
	if !token.IsIdentifier(name) || token.IsKeyword(name) || name == "_" {
		return fmt.Errorf("invalid package: %q (must be a Go identifier)", name)
	}
	return nil
}

func validateGas(field, value string) error {
	v, err := math.ParseUint(value)
	if err != nil || !v.BigInt().IsUint64() {
		return fmt.Errorf("invalid %s: %q (must be an unsigned 64-bit decimal)", field, value)
	}
	return nil
}

func validatePayer(value string) error {
	if _, err := address.FromBase58(value); err != nil {
		return fmt.Errorf("invalid payer: %q (%v)", value, err)
	}
	return nil
}
