package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"github.com/tailscale/hujson"
)

// defaultConfigPath returns $HOME/.forgoscan/scanbench.hujson, or "" if the
// home directory cannot be determined.
func defaultConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		jww.DEBUG.Printf("no home directory, skipping default config: %v", err)
		return ""
	}
	return filepath.Join(home, ".forgoscan", "scanbench.hujson")
}

// loadConfigFile merges the JSON-with-comments file at path into v. Keys are
// the long flag names, for example {"threads": 8, "grain": 4096}.
func loadConfigFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "cannot read config file %s", path)
	}
	standard, err := hujson.Standardize(data)
	if err != nil {
		return errors.Wrapf(err, "invalid config file %s", path)
	}
	v.SetConfigType("json")
	if err := v.MergeConfig(bytes.NewReader(standard)); err != nil {
		return errors.Wrapf(err, "invalid config file %s", path)
	}
	jww.DEBUG.Printf("loaded config file %s", path)
	return nil
}
