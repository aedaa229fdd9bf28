package gate

import (
	"strings"

	"github.com/tidwall/gjson"
)

// legacyActionAliases maps historical action names to their current spelling.
// Stored configs are never rewritten; the alias is applied every time they are read.
var legacyActionAliases = map[string]string{
	"premium_features": "premium_rules",
}

// NormalizeAction trims an action name and applies the legacy alias.
func NormalizeAction(action string) string {
	action = strings.TrimSpace(action)
	if alias, ok := legacyActionAliases[action]; ok {
		return alias
	}
	return action
}

// NormalizeActions normalizes a decoded config value into an ordered list of
// action names. Accepted shapes are a string, []string or []any holding strings;
// anything else yields an empty list.
func NormalizeActions(value any) []string {
	switch v := value.(type) {
	case string:
		return appendAction(make([]string, 0, 1), v)
	case []string:
		actions := make([]string, 0, len(v))
		for _, s := range v {
			actions = appendAction(actions, s)
		}
		return actions
	case []any:
		actions := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				actions = appendAction(actions, s)
			}
		}
		return actions
	default:
		return []string{}
	}
}

// NormalizeActionsJSON is NormalizeActions for a raw JSON value as stored in a
// gate's config column.
func NormalizeActionsJSON(raw []byte) []string {
	if !gjson.ValidBytes(raw) {
		return []string{}
	}
	return normalizeResult(gjson.ParseBytes(raw))
}

func normalizeResult(r gjson.Result) []string {
	switch {
	case r.Type == gjson.String:
		return appendAction(make([]string, 0, 1), r.Str)
	case r.IsArray():
		items := r.Array()
		actions := make([]string, 0, len(items))
		for _, item := range items {
			if item.Type == gjson.String {
				actions = appendAction(actions, item.Str)
			}
		}
		return actions
	default:
		return []string{}
	}
}

func appendAction(actions []string, raw string) []string {
	action := NormalizeAction(raw)
	if action == "" {
		return actions
	}
	return append(actions, action)
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
