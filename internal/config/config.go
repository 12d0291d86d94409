package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the project-level configuration file looked up next to the
// linted tree.
const FileName = "typelint.toml"

// Config is the flat option record consumed by the checker. All suppressions
// default to off; the decorator sets default to the stdlib names.
type Config struct {
	SuppressNoneReturning bool
	SuppressDummyArgs     bool
	AllowUntypedDefs      bool
	AllowUntypedNested    bool
	MypyInitReturn        bool
	DispatchDecorators    map[string]bool
	OverloadDecorators    map[string]bool
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		DispatchDecorators: NameSet([]string{"singledispatch", "singledispatchmethod"}),
		OverloadDecorators: NameSet([]string{"overload"}),
	}
}

// NameSet converts a list of decorator names into the set form the matcher
// consumes.
func NameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if name != "" {
			set[name] = true
		}
	}
	return set
}

// fileConfig mirrors the typelint.toml layout. Pointer fields distinguish
// "unset" from an explicit false so the file only overrides what it names.
type fileConfig struct {
	Check struct {
		SuppressNoneReturning *bool    `toml:"suppress_none_returning"`
		SuppressDummyArgs     *bool    `toml:"suppress_dummy_args"`
		AllowUntypedDefs      *bool    `toml:"allow_untyped_defs"`
		AllowUntypedNested    *bool    `toml:"allow_untyped_nested"`
		MypyInitReturn        *bool    `toml:"mypy_init_return"`
		DispatchDecorators    []string `toml:"dispatch_decorators"`
		OverloadDecorators    []string `toml:"overload_decorators"`
	} `toml:"check"`
}

// Load builds the configuration: defaults, overlaid with the project's
// typelint.toml if one exists. An explicit path wins over the TYPELINT_CONFIG
// environment variable, which wins over the file in the current directory. A
// missing file is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("TYPELINT_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = FileName
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if v := fc.Check.SuppressNoneReturning; v != nil {
		cfg.SuppressNoneReturning = *v
	}
	if v := fc.Check.SuppressDummyArgs; v != nil {
		cfg.SuppressDummyArgs = *v
	}
	if v := fc.Check.AllowUntypedDefs; v != nil {
		cfg.AllowUntypedDefs = *v
	}
	if v := fc.Check.AllowUntypedNested; v != nil {
		cfg.AllowUntypedNested = *v
	}
	if v := fc.Check.MypyInitReturn; v != nil {
		cfg.MypyInitReturn = *v
	}
	if fc.Check.DispatchDecorators != nil {
		cfg.DispatchDecorators = NameSet(fc.Check.DispatchDecorators)
	}
	if fc.Check.OverloadDecorators != nil {
		cfg.OverloadDecorators = NameSet(fc.Check.OverloadDecorators)
	}

	return cfg, nil
}
