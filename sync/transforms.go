package sync

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// FieldTransforms names the transforms that can be applied to mapped fields.
var FieldTransforms = []string{"toLower", "toUpper", "trim", "invert", "nilIfEqual", "warnIfEqual", "defaultIfMissing"}

func splitTransform(transform string) (string, string) {
	function, arg, _ := strings.Cut(transform, ":")
	return function, arg
}

// ValidateFieldTransforms checks every transform targets a known field and is supported.
func ValidateFieldTransforms(transforms map[string]string, known map[string]bool) error {
	var problems []string
	for _, field := range sortedKeys(transforms) {
		if !known[field] {
			problems = append(problems, fmt.Sprintf("field %s does not exist", field))
			continue
		}
		function, _ := splitTransform(transforms[field])
		supported := false
		for _, t := range FieldTransforms {
			if t == function {
				supported = true
				break
			}
		}
		if !supported {
			problems = append(problems, fmt.Sprintf("unsupported transform %s for field %s", transforms[field], field))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid transforms %s", strings.Join(problems, ", "))
	}
	return nil
}

// ApplyFieldTransforms applies configured transforms to the mapped fields of destination.
// Transforms on missing fields are skipped, except defaultIfMissing.
func ApplyFieldTransforms(transforms map[string]string, destination Mappable, logger *zap.Logger) error {
	if len(transforms) == 0 {
		return nil
	}

	fields := destination.GetFields()

	for field, transform := range transforms {
		function, arg := splitTransform(transform)
		value := fields[field]

		switch function {
		case "defaultIfMissing":
			if value == nil || value == "" {
				destination.SetField(field, arg)
			}
			continue
		}

		if value == nil {
			continue
		}

		switch function {
		case "toLower":
			if s, ok := value.(string); ok {
				destination.SetField(field, strings.ToLower(s))
			}
		case "toUpper":
			if s, ok := value.(string); ok {
				destination.SetField(field, strings.ToUpper(s))
			}
		case "trim":
			if s, ok := value.(string); ok {
				destination.SetField(field, strings.TrimSpace(s))
			}
		case "invert":
			// e.g. a source "optedOut" flag mapped to a consent field
			if b, ok := value.(bool); ok {
				destination.SetField(field, !b)
			}
		case "nilIfEqual":
			if fmt.Sprintf("%v", value) == arg {
				destination.SetField(field, nil)
			}
		case "warnIfEqual":
			if s := fmt.Sprintf("%v", value); s == arg {
				logger.Warn("field has flagged value", zap.String("field", field), zap.String("value", s))
			}
		default:
			return fmt.Errorf("unsupported transform: %s", transform)
		}
	}

	return nil
}
