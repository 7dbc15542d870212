// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"testing"
)

// withCleanDirectoryEnv clears the environment, sets the required directory
// env var to a test value, and returns a cleanup function that restores the
// original env. Use with t.Cleanup().
func withCleanDirectoryEnv(t *testing.T) func() {
	t.Helper()
	return withCleanDirectoryEnvAndExtra(t, nil)
}

// withCleanDirectoryEnvAndExtra clears the environment, sets the required
// directory env var plus additional vars, and returns a cleanup function
// that restores the original env. Use with t.Cleanup().
func withCleanDirectoryEnvAndExtra(t *testing.T, extra map[string]string) func() {
	t.Helper()

	original := os.Environ()

	os.Clearenv()
	os.Setenv("DIRECTORY_API_URL", "https://users.example.com/users")
	for key, value := range extra {
		os.Setenv(key, value)
	}

	return func() {
		os.Clearenv()
		for _, kv := range original {
			for i := 0; i < len(kv); i++ {
				if kv[i] == '=' {
					os.Setenv(kv[:i], kv[i+1:])
					break
				}
			}
		}
	}
}
