package valueobjects

import (
	"fmt"
	"strings"
)

// Environment selects the provider host.
type Environment string

const (
	EnvironmentSandbox    Environment = "sandbox"
	EnvironmentProduction Environment = "production"
)

var environmentBaseURLs = map[Environment]string{
	EnvironmentSandbox:    "https://api.sandbox.pawapay.io",
	EnvironmentProduction: "https://api.pawapay.io",
}

func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := environmentBaseURLs[env]; !ok {
		return "", fmt.Errorf("invalid environment specified: %q", s)
	}
	return env, nil
}

// BaseURL returns the API host for the environment. Both wire versions are
// served from it; V2 paths carry a /v2 prefix.
func (e Environment) BaseURL() string {
	return environmentBaseURLs[e]
}

func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}

func (e Environment) String() string {
	return string(e)
}
