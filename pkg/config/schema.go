package config

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema constrains the shape of a loaded config document before it is
// unmarshaled onto defaults. Unknown keys are allowed so configs survive
// version skew.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "analysis": {
      "type": "object",
      "properties": {
        "default_language": {"type": "string", "minLength": 1},
        "include_patterns": {"type": "boolean"},
        "max_file_size": {"type": "integer", "minimum": 0}
      }
    },
    "validation": {
      "type": "object",
      "properties": {
        "parallel": {"type": "boolean"},
        "max_concurrency": {"type": "integer", "minimum": 1},
        "steps": {
          "type": "object",
          "additionalProperties": {
            "type": "object",
            "properties": {
              "enabled": {"type": "boolean"},
              "weight": {"type": "number", "minimum": 0},
              "timeout_ms": {"type": "integer", "minimum": 0}
            }
          }
        }
      }
    },
    "thresholds": {
      "type": "object",
      "properties": {
        "min_score": {"type": "number", "minimum": 0, "maximum": 100},
        "max_critical_issues": {"type": "integer", "minimum": 0},
        "max_high_issues": {"type": "integer", "minimum": 0}
      }
    },
    "exclude": {
      "type": "object",
      "properties": {
        "patterns": {"type": "array", "items": {"type": "string"}},
        "extensions": {"type": "array", "items": {"type": "string"}},
        "dirs": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "output": {
      "type": "object",
      "properties": {
        "format": {"type": "string", "enum": ["text", "json", "yaml", "markdown"]},
        "color": {"type": "boolean"},
        "verbose": {"type": "boolean"}
      }
    }
  }
}`

// validateDocument checks a parsed config document against the schema.
func validateDocument(doc map[string]any) error {
	raw, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchema))
	if err != nil {
		return err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("augur-config.json", raw); err != nil {
		return err
	}
	schema, err := compiler.Compile("augur-config.json")
	if err != nil {
		return err
	}

	return schema.Validate(normalize(doc))
}

// normalize converts parser-specific value types into the generic shapes the
// schema validator understands.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if key, ok := k.(string); ok {
				out[key] = normalize(item)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case int:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}
