// internal/models/query.go
package models

import "sort"

// DeviceType identifies the product category a query is about.
type DeviceType string

const (
	DeviceTypePhone    DeviceType = "phone"
	DeviceTypeLaptop   DeviceType = "laptop"
	DeviceTypeTablet   DeviceType = "tablet"
	DeviceTypeEarphone DeviceType = "earphone"
	DeviceTypeWatch    DeviceType = "watch"
)

// deviceFlagTags maps each requirement flag a device type supports to the
// catalog tag name used for the relational lookup. Flags arriving for a
// device type that does not list them are dropped at validation time.
var deviceFlagTags = map[DeviceType]map[string]string{
	DeviceTypePhone: {
		"battery":    "long_battery",
		"camera":     "good_camera",
		"gaming":     "gaming",
		"slim":       "slim_light",
		"waterproof": "water_resistant",
		"storage":    "large_storage",
	},
	DeviceTypeLaptop: {
		"battery":  "long_battery",
		"gaming":   "gaming",
		"slim":     "slim_light",
		"office":   "office_work",
		"graphics": "graphics_design",
		"storage":  "large_storage",
	},
	DeviceTypeTablet: {
		"battery": "long_battery",
		"pen":     "stylus_support",
		"slim":    "slim_light",
		"storage": "large_storage",
	},
	DeviceTypeEarphone: {
		"battery":   "long_battery",
		"noisecanc": "noise_cancelling",
		"sport":     "sport_fit",
	},
	DeviceTypeWatch: {
		"battery":    "long_battery",
		"sport":      "sport_tracking",
		"waterproof": "water_resistant",
	},
}

// ValidDeviceType reports whether t is a known device type.
func ValidDeviceType(t DeviceType) bool {
	_, ok := deviceFlagTags[t]
	return ok
}

// DeviceTypes returns all known device types, sorted.
func DeviceTypes() []DeviceType {
	out := make([]DeviceType, 0, len(deviceFlagTags))
	for t := range deviceFlagTags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TagForFlag resolves a requirement flag to its catalog tag name for the
// given device type. The second return is false for unknown flags.
func TagForFlag(t DeviceType, flag string) (string, bool) {
	tags, ok := deviceFlagTags[t]
	if !ok {
		return "", false
	}
	tag, ok := tags[flag]
	return tag, ok
}

// Query is the structured requirement produced by the upstream extractor.
// Every field may be absent on the wire; zero values mean "not specified".
type Query struct {
	DeviceType   DeviceType      `json:"deviceType"`
	Requirements map[string]bool `json:"requirements,omitempty"`
	MinBudget    *int64          `json:"minBudget,omitempty"`
	MaxBudget    *int64          `json:"maxBudget,omitempty"`
	Brands       []string        `json:"brands,omitempty"`
	FreeText     string          `json:"freeText,omitempty"`
	TopK         int             `json:"topK,omitempty"`
}

// ActiveFlags returns the requirement flags set to true that the query's
// device type supports, sorted by flag name so downstream rank-list order
// is stable across runs.
func (q *Query) ActiveFlags() []string {
	if len(q.Requirements) == 0 {
		return nil
	}
	flags := make([]string, 0, len(q.Requirements))
	for name, on := range q.Requirements {
		if !on {
			continue
		}
		if _, known := TagForFlag(q.DeviceType, name); !known {
			continue
		}
		flags = append(flags, name)
	}
	sort.Strings(flags)
	return flags
}

// HasBudget reports whether at least one budget bound is set.
func (q *Query) HasBudget() bool {
	return q.MinBudget != nil || q.MaxBudget != nil
}
