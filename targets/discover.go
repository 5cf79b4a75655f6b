package targets

import (
	"fmt"

	"github.com/beac0n5/OFFAT/serverurl"
)

// defaultServerURL is what OpenAPI 3 implies when "servers" is missing or empty.
const defaultServerURL = "/"

// discoverServers returns the raw server URLs declared by doc. ok is false when
// doc is neither an OpenAPI 3 nor a Swagger 2 document.
func discoverServers(doc map[string]any) (urls []string, ok bool) {
	if _, isOAS3 := doc["openapi"]; isOAS3 {
		return oas3Servers(doc), true
	}
	if _, isOAS2 := doc["swagger"]; isOAS2 {
		return oas2Servers(doc), true
	}
	return nil, false
}

func oas3Servers(doc map[string]any) []string {
	list, _ := doc["servers"].([]any)
	var urls []string
	for _, item := range list {
		server, ok := item.(map[string]any)
		if !ok {
			continue
		}
		raw, ok := server["url"].(string)
		if !ok {
			continue
		}
		urls = append(urls, serverurl.ExpandVariables(raw, variableDefaults(server)))
	}
	if len(urls) == 0 {
		return []string{defaultServerURL}
	}
	return urls
}

func variableDefaults(server map[string]any) map[string]string {
	vars, ok := server["variables"].(map[string]any)
	if !ok {
		return nil
	}
	defaults := make(map[string]string, len(vars))
	for name, v := range vars {
		variable, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if d, ok := variable["default"]; ok && d != nil {
			defaults[name] = fmt.Sprint(d)
		}
	}
	return defaults
}

// oas2Servers builds one URL per declared scheme. Without a host there is
// nothing to target.
func oas2Servers(doc map[string]any) []string {
	host, _ := doc["host"].(string)
	if host == "" {
		return nil
	}
	basePath, _ := doc["basePath"].(string)

	var schemes []string
	if list, ok := doc["schemes"].([]any); ok {
		for _, s := range list {
			if scheme, ok := s.(string); ok && scheme != "" {
				schemes = append(schemes, scheme)
			}
		}
	}
	if len(schemes) == 0 {
		schemes = []string{serverurl.SchemeHTTPS}
	}

	urls := make([]string, 0, len(schemes))
	for _, scheme := range schemes {
		urls = append(urls, scheme+"://"+host+basePath)
	}
	return urls
}
