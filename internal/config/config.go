// Package config reads process configuration from environment
// variables, the idiom the teacher daemon uses for every role
// (mustEnv/envDefault in its loadConfig): required settings abort the
// process immediately with a clear message, optional settings fall
// back to a documented default.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/readytrader/esem/internal/esem"
)

// MustEnv reads a required environment variable or terminates the
// process via log.Fatalf.
func MustEnv(name string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		log.Fatalf("missing required env var: %s", name)
	}
	return v
}

// EnvDefault reads an optional environment variable, returning def
// when unset or blank.
func EnvDefault(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

// ParseVariant maps the ESEM_VARIANT env value ("v1"/"v2") to an
// esem.Variant, terminating the process on an unrecognized value.
func ParseVariant(raw string) esem.Variant {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "v1":
		return esem.V1
	case "v2", "":
		return esem.V2
	default:
		log.Fatalf("invalid ESEM_VARIANT=%q (expected v1 or v2)", raw)
		return esem.V2
	}
}
