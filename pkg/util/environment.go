package util

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// LoadEnvironmentFile loads a .env file into the process environment if one is
// present. Variables already set in the environment win.
func LoadEnvironmentFile(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	for _, filename := range filenames {
		err := godotenv.Load(filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// GetDurationVariable parses a Go duration string (eg. 1s, 1500ms) from the environment map
func GetDurationVariable(env map[string]string, name string, fallback time.Duration) time.Duration {
	value, ok := env[name]
	if !ok || value == "" {
		return fallback
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return duration
}
