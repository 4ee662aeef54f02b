package environment

import (
	"strings"

	"github.com/i474232898/greentrack/internal/common"
	"github.com/i474232898/greentrack/internal/reference"
)

// InferState guesses the Indian state of a geocoder display name.
//
// Known city aliases are tried first against the whole string. Failing
// that, each comma separated segment is compared with the state list, by
// exact match and then by substring in either direction.
func InferState(tables *reference.Tables, displayName string) string {
	names := make([]string, 0, len(tables.Cities))
	cityStates := make(map[string]string, len(tables.Cities))
	for _, c := range tables.Cities {
		if _, seen := cityStates[c.Name]; seen {
			continue
		}
		names = append(names, c.Name)
		cityStates[c.Name] = c.State
	}
	if city, ok := common.FirstContained(displayName, names...); ok {
		return cityStates[city]
	}

	for _, part := range strings.Split(displayName, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		for _, state := range tables.States {
			if part == state {
				return tables.NormalizeState(state)
			}
		}
		lowerPart := strings.ToLower(part)
		for _, state := range tables.States {
			lowerState := strings.ToLower(state)
			if strings.Contains(lowerPart, lowerState) || strings.Contains(lowerState, lowerPart) {
				return tables.NormalizeState(state)
			}
		}
	}

	return reference.UnknownState
}
