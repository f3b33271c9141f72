package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// defaultHome returns the home directory used when no -home flag is given.
func defaultHome() string {
	return env("ROYALTYD_HOME", filepath.Join(os.Getenv("HOME"), ".royaltyd"))
}

// loadEnvFiles reads the given .env files in order, skipping the missing
// ones. Variables already present in the environment are not overwritten.
// A file that cannot be loaded is reported to w and otherwise ignored.
func loadEnvFiles(w io.Writer, paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			fmt.Fprintf(w, "cannot load %s: %s\n", path, err)
		}
	}
}
