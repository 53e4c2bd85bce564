package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// resolvePath expands p and joins it to root when it is still relative.
func resolvePath(p, root string) string {
	p = expandPath(p)
	if p == "" || filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}

// expandPath expands environment variables and a leading ~ in p. On
// Windows %VAR% references and ~\ are expanded too.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = expandPercentVars(p, os.LookupEnv)
	}

	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && rest[0] != '/' && !(runtime.GOOS == "windows" && rest[0] == '\\')) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}

// expandPercentVars replaces %NAME% with the value lookup returns for NAME.
// Unknown names and a lone % are kept as written; %% becomes %.
func expandPercentVars(p string, lookup func(string) (string, bool)) string {
	if !strings.Contains(p, "%") {
		return p
	}
	var b strings.Builder
	for {
		start := strings.IndexByte(p, '%')
		if start < 0 {
			break
		}
		end := strings.IndexByte(p[start+1:], '%')
		if end < 0 {
			break
		}
		b.WriteString(p[:start])
		name := p[start+1 : start+1+end]
		switch val, ok := lookup(name); {
		case name == "":
			b.WriteByte('%')
		case ok:
			b.WriteString(val)
		default:
			b.WriteString("%" + name + "%")
		}
		p = p[start+2+end:]
	}
	b.WriteString(p)
	return b.String()
}
