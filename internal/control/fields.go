package control

import (
	"strings"
)

// relationFields hold comma-separated package relations.
var relationFields = map[string]bool{
	"Depends":             true,
	"Pre-Depends":         true,
	"Recommends":          true,
	"Suggests":            true,
	"Enhances":            true,
	"Breaks":              true,
	"Conflicts":           true,
	"Provides":            true,
	"Replaces":            true,
	"Build-Depends":       true,
	"Build-Depends-Arch":  true,
	"Build-Depends-Indep": true,
	"Built-Using":         true,
	"Uploaders":           true,
}

// IsRelationField reports whether name is a comma-separated relation field.
func IsRelationField(name string) bool {
	return relationFields[name]
}

// ParseField converts a raw scalar into the kind implied by the field name:
// Architecture splits on whitespace, relation fields split on commas,
// Description is parsed, everything else stays a string.
func ParseField(name, raw string) Value {
	switch {
	case name == FieldArchitecture:
		return List(strings.Fields(raw)...)
	case name == FieldDescription:
		return Desc(ParseDescription(raw))
	case IsRelationField(name):
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.Join(strings.Fields(item), " "); item != "" {
				items = append(items, item)
			}
		}
		return List(items...)
	default:
		return String(strings.TrimSpace(raw))
	}
}
