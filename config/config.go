// Package config loads rangecheck.conf, the solver's tunables: the
// Jacobi iteration cap, the widening threshold, and which warning
// categories are printed. Adapted from honnef.co/go/tools/config, which
// walks up from a starting directory merging a chain of config files
// into one; this keeps that directory-ascending discovery and the
// "inherit"/"all" checklist semantics, trimmed to the one checklist this
// analyzer has.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Config is the merged, normalized result of Load.
type Config struct {
	MaxIterations   int      `toml:"max_iterations"`
	WidenAfter      int      `toml:"widen_after"`
	EnabledWarnings []string `toml:"enabled_warnings"`
}

type loaded struct {
	cfg  Config
	meta toml.MetaData
}

func mergeLists(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for _, el := range b {
		if el == "inherit" {
			out = append(out, a...)
		} else {
			out = append(out, el)
		}
	}
	return out
}

func normalizeList(list []string) []string {
	if len(list) > 1 {
		sort.Strings(list)
		nlist := make([]string, 0, len(list))
		nlist = append(nlist, list[0])
		for i, el := range list[1:] {
			if el != list[i] {
				nlist = append(nlist, el)
			}
		}
		list = nlist
	}
	for _, el := range list {
		if el == "inherit" {
			// The default config never uses "inherit", so this should
			// never be reached.
			panic(`unresolved "inherit"`)
		}
		if el == "all" {
			return []string{"all"}
		}
	}
	return list
}

func (l loaded) merge(o loaded) loaded {
	if o.meta.IsDefined("enabled_warnings") {
		l.cfg.EnabledWarnings = mergeLists(l.cfg.EnabledWarnings, o.cfg.EnabledWarnings)
	}
	if o.meta.IsDefined("max_iterations") {
		l.cfg.MaxIterations = o.cfg.MaxIterations
	}
	if o.meta.IsDefined("widen_after") {
		l.cfg.WidenAfter = o.cfg.WidenAfter
	}
	return l
}

// Default is the config used when no rangecheck.conf is found anywhere
// up the directory tree.
var Default = Config{
	MaxIterations:   10000,
	WidenAfter:      3,
	EnabledWarnings: []string{"all"},
}

const configName = "rangecheck.conf"

func parseConfigs(dir string) ([]loaded, error) {
	var out []loaded

	for dir != "" {
		f, err := os.Open(filepath.Join(dir, configName))
		if os.IsNotExist(err) {
			ndir := filepath.Dir(dir)
			if ndir == dir {
				break
			}
			dir = ndir
			continue
		}
		if err != nil {
			return nil, err
		}
		var cfg Config
		meta, err := toml.DecodeReader(f, &cfg)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, loaded{cfg, meta})
		ndir := filepath.Dir(dir)
		if ndir == dir {
			break
		}
		dir = ndir
	}

	out = append(out, loaded{cfg: Default})
	if len(out) < 2 {
		return out, nil
	}
	for i := 0; i < len(out)/2; i++ {
		out[i], out[len(out)-1-i] = out[len(out)-1-i], out[i]
	}
	return out, nil
}

func mergeConfigs(confs []loaded) Config {
	if len(confs) == 0 {
		panic("trying to merge zero configs")
	}
	conf := confs[0]
	for _, oconf := range confs[1:] {
		conf = conf.merge(oconf)
	}
	return conf.cfg
}

// Load discovers and merges rangecheck.conf starting at dir and walking
// up to the filesystem root, nearest-directory-wins, falling back to
// Default for any field no file sets.
func Load(dir string) (Config, error) {
	confs, err := parseConfigs(dir)
	if err != nil {
		return Config{}, err
	}
	conf := mergeConfigs(confs)
	conf.EnabledWarnings = normalizeList(conf.EnabledWarnings)
	if conf.MaxIterations <= 0 {
		conf.MaxIterations = Default.MaxIterations
	}
	if conf.WidenAfter <= 0 {
		conf.WidenAfter = Default.WidenAfter
	}
	return conf, nil
}

// WarningEnabled reports whether category is enabled per cfg, honoring
// the "all" sentinel.
func WarningEnabled(cfg Config, category string) bool {
	for _, c := range cfg.EnabledWarnings {
		if c == "all" || c == category {
			return true
		}
	}
	return false
}
