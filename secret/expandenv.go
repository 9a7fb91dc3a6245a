package secret

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/creativemill/taskops/fault"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict expands environment variables in s.
//
// Semantics:
//   - `$VAR` and `${VAR}` are expanded via os.ExpandEnv.
//   - If `${VAR}` is present but VAR is missing from the environment, it
//     errors with a configuration fault.
//   - `$$` emits a literal `$` (escape hatch).
func ExpandEnvStrict(s string) (string, error) {
	const dollarSentinel = "\x00TASKOPS_SECRET_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	missing := make(map[string]struct{})
	for _, match := range envVarPattern.FindAllStringSubmatch(s, -1) {
		key := match[1]
		if _, ok := os.LookupEnv(key); !ok {
			missing[key] = struct{}{}
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fault.Newf(fault.Config, "secret",
			"missing required environment variables: %s", strings.Join(keys, ", "))
	}

	s = os.ExpandEnv(s)
	s = strings.ReplaceAll(s, dollarSentinel, "$")
	return s, nil
}

// Require returns the named environment variable, or a configuration
// fault when it is unset or empty. Provider credentials go through
// here so a missing key fails the job before any remote call.
func Require(name string) (string, error) {
	val, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(val) == "" {
		return "", fault.Newf(fault.Config, "secret", "required environment variable %s is not set", name)
	}
	return val, nil
}

// RequireAll resolves several credentials at once, reporting every
// missing one in a single error.
func RequireAll(names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		val, err := Require(name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		out[name] = val
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fault.Newf(fault.Config, "secret",
			"missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
