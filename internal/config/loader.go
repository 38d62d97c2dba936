package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DescriptorName is the workspace-relative project descriptor file.
const DescriptorName = "abc.json"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "EHDEV_"

// flagKeys bridges kebab-case CLI flag names to descriptor keys.
var flagKeys = map[string]string{
	"pages-root":  "pagesRoot",
	"build-path":  "build_path",
	"public-path": "publicPath",
	"framework":   "framework",
}

// Load builds the effective ProjectConfig for one invocation.
// Precedence (highest to lowest): flags > env vars > abc.json > defaults.
// Each call returns a fresh value; callers must not share or mutate it
// across invocations.
func Load(workspaceRoot string, flags *pflag.FlagSet) (*ProjectConfig, error) {
	absRoot, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"pagesRoot":                   DefaultPagesRoot,
		"build_path":                  DefaultBuildPath,
		"publicPath":                  DefaultPublicPath,
		"htmlAssetsInject":            DefaultHTMLInject,
		"base64":                      DefaultBase64Limit,
		"browser_support.DEVELOPMENT": DefaultDevBrowsers,
		"browser_support.PRODUCTION":  DefaultProdBrowsers,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Workspace descriptor (optional; a project of defaults is valid)
	descriptor := filepath.Join(absRoot, DescriptorName)
	if _, err := os.Stat(descriptor); err == nil {
		if err := k.Load(file.Provider(descriptor), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("error reading descriptor %s: %w", descriptor, err)
		}
	}

	// 3. Environment variables (EHDEV_BUILD_PATH -> build_path)
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg ProjectConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode descriptor: %w", err)
	}

	cfg.WorkspaceRoot = absRoot
	cfg.PagesRoot = resolvePathRelativeTo(cfg.PagesRoot, absRoot)
	cfg.BuildPath = resolvePathRelativeTo(cfg.BuildPath, absRoot)

	return &cfg, nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not
// absolute. Returns the path unchanged if it's empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
