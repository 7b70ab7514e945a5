package invoke

import "strings"

// mergeEnv merges base environment variables with overrides. If an override
// key already exists in base, the override value wins and keeps the base
// position. Entries without '=' are dropped.
func mergeEnv(base, overrides []string) []string {
	env := make(map[string]string, len(base)+len(overrides))
	order := make([]string, 0, len(base)+len(overrides))

	add := func(entries []string) {
		for _, entry := range entries {
			key, _, found := strings.Cut(entry, "=")
			if !found || key == "" {
				continue
			}
			if _, exists := env[key]; !exists {
				order = append(order, key)
			}
			env[key] = entry
		}
	}

	add(base)
	add(overrides)

	result := make([]string, 0, len(order))
	for _, key := range order {
		result = append(result, env[key])
	}
	return result
}
