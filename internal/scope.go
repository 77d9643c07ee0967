package internal

import (
	"os"
	"path/filepath"
)

const ConfigFileName = ".twig.yaml"

type ScopeType string

const (
	ScopeGlobal   ScopeType = "global"
	ScopeProject  ScopeType = "project"
	ScopeExplicit ScopeType = "explicit"
)

// Scope is where configuration was found.
type Scope struct {
	Type       ScopeType
	Root       string // directory the config belongs to
	ConfigPath string
}

type ConfigResolver struct {
	homeDir string
}

func NewConfigResolver() *ConfigResolver {
	home, _ := os.UserHomeDir()
	return &ConfigResolver{homeDir: home}
}

func (r *ConfigResolver) Global() Scope {
	return Scope{
		Type:       ScopeGlobal,
		Root:       r.homeDir,
		ConfigPath: filepath.Join(r.homeDir, ConfigFileName),
	}
}

func (r *ConfigResolver) Project() (Scope, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return Scope{}, false
	}
	return r.findProjectScope(cwd)
}

func (r *ConfigResolver) findProjectScope(dir string) (Scope, bool) {
	for {
		path := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return Scope{Type: ScopeProject, Root: dir, ConfigPath: path}, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Scope{}, false
		}
		dir = parent
	}
}

// Resolve picks the explicit path if given, else the nearest project config,
// else the global one.
func (r *ConfigResolver) Resolve(explicit string) Scope {
	if explicit != "" {
		return Scope{Type: ScopeExplicit, Root: filepath.Dir(explicit), ConfigPath: explicit}
	}
	if scope, ok := r.Project(); ok {
		return scope
	}
	return r.Global()
}

func (r *ConfigResolver) EnvVars(scope Scope, version string) map[string]string {
	bin, _ := os.Executable()
	cwd, _ := os.Getwd()
	return map[string]string{
		"TWIG_VERSION": version,
		"TWIG_BIN":     bin,
		"TWIG_ROOT":    cwd,
		"TWIG_CONFIG":  scope.ConfigPath,
	}
}
