package config

import "context"

// SecretProvider resolves secret references (SSM parameter paths or their
// local equivalents) to plaintext values.
type SecretProvider interface {
	// GetParametersBatch returns key -> value for every key it could
	// resolve. Keys it cannot find are omitted or reported as an error,
	// at the implementation's choice.
	GetParametersBatch(ctx context.Context, keys []string) (map[string]string, error)
}
