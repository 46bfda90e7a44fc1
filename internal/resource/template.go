package resource

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`^:([A-Za-z_][A-Za-z0-9_]*)$`)

// placeholders returns the names of the :name path segments of a template
func placeholders(template string) ([]string, error) {
	u, err := url.Parse(template)

	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidTemplate, template, err)
	}

	if u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return nil, fmt.Errorf("%w %q: must be an absolute path relative to the base url", ErrInvalidTemplate, template)
	}

	names := make([]string, 0)

	for _, segment := range strings.Split(u.Path, "/") {
		if !strings.HasPrefix(segment, ":") {
			continue
		}

		m := placeholderRegex.FindStringSubmatch(segment)

		if m == nil {
			return nil, fmt.Errorf("%w %q: malformed placeholder %q", ErrInvalidTemplate, template, segment)
		}

		names = append(names, m[1])
	}

	return names, nil
}

// expand substitutes every placeholder with its path escaped value
func expand(template string, params map[string]string) (string, error) {
	path, query, _ := strings.Cut(template, "?")

	segments := strings.Split(path, "/")

	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}

		name := segment[1:]
		v, ok := params[name]

		if !ok || v == "" {
			return "", fmt.Errorf("%w %s", ErrMissingParameter, name)
		}

		segments[i] = url.PathEscape(v)
	}

	expanded := strings.Join(segments, "/")

	if query != "" {
		expanded = expanded + "?" + query
	}

	return expanded, nil
}
