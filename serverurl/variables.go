package serverurl

import "regexp"

var variablePattern = regexp.MustCompile(`\{([^{}]+)\}`)

// ExpandVariables substitutes OpenAPI server variables such as
// "https://{env}.example.com:{port}/v1" with values from vars.
// Variables without a value are left as they are.
func ExpandVariables(raw string, vars map[string]string) string {
	if len(vars) == 0 {
		return raw
	}
	return variablePattern.ReplaceAllStringFunc(raw, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
