package main

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/klauspost/flatjson"
)

// loadCLIConfig reads --config (if set) over defaultCLIConfig. The
// result's parseOptions method translates it into core parse Options.
func loadCLIConfig() (cliConfig, error) {
	cfg := defaultCLIConfig()
	if cfgFile == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(cfgFile, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c cliConfig) parseOptions() []flatjson.Option {
	return []flatjson.Option{
		flatjson.WithHexNumbers(c.HexNumbers),
		flatjson.WithDespacedInput(c.Despaced),
	}
}

func readFile(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
