// Package config owns the viper-backed settings registry: defaults, environment bindings and the TOML file.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/vidpool/vidpool/constant"
	"github.com/vidpool/vidpool/filesystem"
	"github.com/vidpool/vidpool/where"
)

// EnvKeyReplacer maps configuration keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and environment bindings, then reads vidpool.toml if it exists.
func Setup() error {
	viper.SetConfigName(constant.Vidpool)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
		if err := viper.BindEnv(name, field.Env()); err != nil {
			return err
		}
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}
