package health

import (
	"context"
	"fmt"
	"os"
)

// ModelFile reports ready when the speech-to-text model file exists and is a
// regular file. The model is loaded once at startup, so this mostly guards
// against the file being moved or deleted underneath a long-running process.
func ModelFile(path string) Checker {
	return Checker{
		Name: "stt-model",
		Check: func(context.Context) error {
			fi, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("model file: %w", err)
			}
			if fi.IsDir() {
				return fmt.Errorf("model path %s is a directory", path)
			}
			return nil
		},
	}
}

// TokenCache reports ready when the OAuth token cache is readable. Only
// registered when the Web API backend is active.
func TokenCache(path string) Checker {
	return Checker{
		Name: "token-cache",
		Check: func(context.Context) error {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("token cache (run with -auth): %w", err)
			}
			return nil
		},
	}
}
