// Package registry loads and validates the route registry: the ordered set
// of intents and their example utterances.
package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"intent-router/internal/model"
)

type file struct {
	Routes []model.Route `yaml:"routes"`
}

// Parse decodes a YAML registry document and validates it.
func Parse(data []byte) ([]model.Route, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("registry: decode yaml: %w", err)
	}
	return Normalize(f.Routes)
}

// LoadFile reads and parses the registry at path.
func LoadFile(path string) ([]model.Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes routes in the same YAML layout Parse accepts.
func Marshal(routes []model.Route) ([]byte, error) {
	return yaml.Marshal(file{Routes: routes})
}

// Normalize validates routes and returns a defensive copy in registration order.
// Utterances are trimmed; blank ones are dropped and repeats within a route
// collapse onto their first occurrence.
func Normalize(routes []model.Route) ([]model.Route, error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}

	seen := make(map[string]bool, len(routes))
	out := make([]model.Route, 0, len(routes))
	for i, r := range routes {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("route #%d: %w", i, ErrEmptyRouteName)
		}
		if name == model.RouteNone {
			return nil, fmt.Errorf("route %q: name is reserved", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("route %q: %w", name, ErrDuplicateRoute)
		}
		seen[name] = true

		if r.Threshold != nil && (*r.Threshold < -1 || *r.Threshold > 1) {
			return nil, fmt.Errorf("route %q: %w", name, ErrBadThreshold)
		}

		utterances := dedupe(r.Utterances)
		if len(utterances) == 0 {
			return nil, fmt.Errorf("route %q: %w", name, ErrNoUtterances)
		}

		nr := model.Route{Name: name, Utterances: utterances}
		if r.Threshold != nil {
			t := *r.Threshold
			nr.Threshold = &t
		}
		out = append(out, nr)
	}
	return out, nil
}

func dedupe(utterances []string) []string {
	seen := make(map[string]bool, len(utterances))
	out := make([]string, 0, len(utterances))
	for _, u := range utterances {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
