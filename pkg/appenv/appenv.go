package appenv

import (
	"os"
	"strings"
)

// Env is the application runtime environment, read from APP_ENV.
type Env string

const (
	Production  Env = "production"
	Development Env = "development"
	Test        Env = "test"
)

// Current returns the effective runtime environment. Empty or unknown
// values behave as production so a misconfigured deployment never runs
// with relaxed settings.
func Current() Env {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case string(Development):
		return Development
	case string(Test):
		return Test
	default:
		return Production
	}
}

func IsProduction() bool { return Current() == Production }
func IsTest() bool       { return Current() == Test }
