// Package templates holds the scaffold files written by 'safename init'.
package templates

import (
	_ "embed"
)

//go:embed config.template

// ConfigYAML is the config.yaml scaffold with every setting documented.
var ConfigYAML []byte

//go:embed env.template

// EnvFile is the .env scaffold documenting the SAFENAME_ overrides.
var EnvFile []byte
