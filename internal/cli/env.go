package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const envPrefix = "INCUBATOR_"

// envName maps a flag name to its environment variable: --call-limit reads
// INCUBATOR_CALL_LIMIT.
func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// bindEnvFlags fills every flag not set on the command line from its
// environment variable. Flags given explicitly always win.
func bindEnvFlags(fs *pflag.FlagSet, lookup func(string) (string, bool)) error {
	var firstErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if firstErr != nil || f.Changed || f.Name == "help" {
			return
		}
		name := envName(f.Name)
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		if err := fs.Set(f.Name, v); err != nil {
			firstErr = fmt.Errorf("invalid %s: %w", name, err)
		}
	})
	return firstErr
}
