package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
)

const (
	EnvironmentVariablePrefix = "FORMULAIC_"
	fileSuffix                = "_FILE"
)

// SetFlagsFromEnvVariables sets each unset flag from an env variable named
// after it, e.g. --api-key from FORMULAIC_API_KEY. Failing that, the flag is
// set from the contents of the file named by FORMULAIC_API_KEY_FILE. Flags
// already set on the command line take precedence.
func SetFlagsFromEnvVariables(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed {
			return
		}
		envVar := flagToEnvVarName(f)
		if val, present := os.LookupEnv(envVar); present {
			if setErr := fs.Set(f.Name, val); setErr != nil {
				err = fmt.Errorf("setting flag %s from %s: %w", f.Name, envVar, setErr)
			}
			return
		}
		// a flag named for a file is never itself read from a file
		if strings.HasSuffix(envVar, fileSuffix) {
			return
		}
		path, present := os.LookupEnv(envVar + fileSuffix)
		if !present {
			return
		}
		contents, readErr := os.ReadFile(path)
		if readErr != nil {
			err = fmt.Errorf("reading %s: %w", envVar+fileSuffix, readErr)
			return
		}
		if setErr := fs.Set(f.Name, string(contents)); setErr != nil {
			err = fmt.Errorf("setting flag %s from %s: %w", f.Name, envVar+fileSuffix, setErr)
		}
	})
	return err
}

func flagToEnvVarName(f *pflag.Flag) string {
	return EnvironmentVariablePrefix + strcase.ToScreamingSnake(f.Name)
}
