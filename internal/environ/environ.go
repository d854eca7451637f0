// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package environ loads process environment overrides from a dotenv file.
// Browser and scraper settings (CHROME_PATH, the SCHOLAR_SCRAPER_* family)
// can live in a .env file next to the working directory instead of the
// shell profile.
package environ

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load applies the dotenv file at path to the process environment and
// returns the key/value pairs it applied. A missing file is not an error.
// Variables already present in the environment win over file values and are
// not returned.
func Load(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	applied := make(map[string]string)
	for key, value := range values {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not set %s: %v\n", key, err)
			continue
		}
		applied[key] = value
	}
	return applied, nil
}
