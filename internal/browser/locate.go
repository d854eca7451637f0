// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// chromeEnvVar names the environment variable consulted for an explicit
// browser executable before probing PATH.
const chromeEnvVar = "CHROME_PATH"

// chromeCandidates lists executable names probed in order when no explicit
// path is configured.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// lookuper abstracts executable and environment lookups for testing.
type lookuper interface {
	LookPath(file string) (string, error)
	Getenv(key string) string
}

// osLookuper is the production lookuper backed by os and os/exec.
type osLookuper struct{}

func (osLookuper) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osLookuper) Getenv(key string) string {
	return os.Getenv(key)
}

var defaultLookup lookuper = osLookuper{}

// LocateChrome resolves the browser executable to launch. Resolution order:
// the explicit path (config or flag), the CHROME_PATH environment variable,
// then the first candidate name found on PATH. Returns an error naming every
// candidate when nothing resolves.
func LocateChrome(explicit string) (string, error) {
	return locateChrome(explicit, defaultLookup)
}

func locateChrome(explicit string, look lookuper) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := look.Getenv(chromeEnvVar); p != "" {
		return p, nil
	}
	for _, name := range chromeCandidates {
		if p, err := look.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf(
		"no Chrome executable found: set %s or install one of %s",
		chromeEnvVar, strings.Join(chromeCandidates, ", "),
	)
}
