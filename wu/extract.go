package wu

import (
	"strconv"
	"strings"
)

// Extract resolves a dotted path such as "current_observation.temp_f"
// against a decoded JSON tree. Objects are walked by key and arrays by
// decimal index ("RESULTS.0.name"). Any missing or non-traversable step
// yields nil; Extract never fails.
func Extract(tree any, path string) any {
	if tree == nil || path == "" {
		return nil
	}

	node := tree
	for _, seg := range strings.Split(path, ".") {
		switch n := node.(type) {
		case map[string]any:
			v, ok := n[seg]
			if !ok {
				return nil
			}
			node = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil
			}
			node = n[i]
		default:
			return nil
		}
	}
	return node
}
