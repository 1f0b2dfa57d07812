package compare

import (
	"fmt"
	"strconv"
)

// ExtractSpecification returns the workflow attribute mapping found at
// verified.specification in a decoded JSON payload. Scalar values are
// coerced to strings. Any shape problem -- a non-object payload, a missing
// level, or a wrong type along the path -- yields an empty mapping rather
// than an error, so a malformed scrape run never aborts row processing.
func ExtractSpecification(payload any) map[string]string {
	spec := map[string]string{}

	root, ok := payload.(map[string]any)
	if !ok {
		return spec
	}
	verified, ok := root["verified"].(map[string]any)
	if !ok {
		return spec
	}
	attrs, ok := verified["specification"].(map[string]any)
	if !ok {
		return spec
	}

	for name, value := range attrs {
		spec[name] = stringify(value)
	}
	return spec
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
