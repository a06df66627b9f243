package navigation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRoute = errors.New("unknown route")

// Route is one entry of the route table. Children inherit the parent's
// requirements and have paths relative to it.
type Route struct {
	Name     RouteName
	Path     string
	Meta     Requirements
	Children []Route
}

// DefaultRoutes returns the storefront route table
func DefaultRoutes() []Route {
	return []Route{
		{Name: RouteLogin, Path: "/login"},
		{Name: RouteRegister, Path: "/register"},
		{Name: RouteHome, Path: "/"},
		{Name: RouteCart, Path: "/cart", Meta: Requirements{RequiresAuth: true}},
		{Name: RouteProfile, Path: "/profile", Meta: Requirements{RequiresAuth: true}},
		{Name: RouteOrders, Path: "/orders", Meta: Requirements{RequiresAuth: true}},
		{
			Name: RouteAdminDashboard,
			Path: "/admin",
			Meta: Requirements{RequiresAuth: true, RequiresAdmin: true},
			Children: []Route{
				{Name: RouteAdminProducts, Path: "products"},
				{Name: RouteAdminProductAdd, Path: "products/add"},
				{Name: RouteAdminProductEdit, Path: "products/edit/:id"},
				{Name: RouteAdminOrders, Path: "orders"},
				{Name: RouteAdminStats, Path: "stats"},
				{Name: RouteAdminOrderDetail, Path: "orders/:id"},
			},
		},
	}
}

// ResolvedRoute is a flattened table entry with its absolute path and
// effective requirements
type ResolvedRoute struct {
	Name         RouteName
	Path         string
	Requirements Requirements
	segments     []string
}

// Target returns the navigation target for this route
func (r ResolvedRoute) Target() Target {
	return Target{Name: r.Name, Requirements: r.Requirements}
}

// Table is an immutable, flattened route table
type Table struct {
	routes []ResolvedRoute
	byName map[RouteName]int
}

// NewTable flattens routes. Duplicate names are rejected.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{byName: make(map[RouteName]int)}
	if err := t.add(routes, "", Requirements{}); err != nil {
		return nil, err
	}
	return t, nil
}

// MustDefaultTable returns the table built from DefaultRoutes
func MustDefaultTable() *Table {
	t, err := NewTable(DefaultRoutes())
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) add(routes []Route, parentPath string, inherited Requirements) error {
	for _, r := range routes {
		if r.Name == "" {
			return fmt.Errorf("route %q has no name", r.Path)
		}
		if _, exists := t.byName[r.Name]; exists {
			return fmt.Errorf("duplicate route name %q", r.Name)
		}

		path := joinPath(parentPath, r.Path)
		reqs := inherited.Merge(r.Meta)
		t.byName[r.Name] = len(t.routes)
		t.routes = append(t.routes, ResolvedRoute{
			Name:         r.Name,
			Path:         path,
			Requirements: reqs,
			segments:     splitPath(path),
		})

		if err := t.add(r.Children, path, reqs); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the route with the given name
func (t *Table) Lookup(name RouteName) (ResolvedRoute, error) {
	i, ok := t.byName[name]
	if !ok {
		return ResolvedRoute{}, fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	return t.routes[i], nil
}

// Match finds the route whose path matches path, returning the values bound
// to its :param segments. Static segments take precedence over parameters.
func (t *Table) Match(path string) (ResolvedRoute, map[string]string, error) {
	segments := splitPath(path)

	best := -1
	bestStatic := -1
	var bestParams map[string]string
	for i, r := range t.routes {
		params, static, ok := matchSegments(r.segments, segments)
		if !ok || static <= bestStatic {
			continue
		}
		best, bestStatic, bestParams = i, static, params
	}
	if best < 0 {
		return ResolvedRoute{}, nil, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}
	return t.routes[best], bestParams, nil
}

// Build renders the absolute path for a route, substituting params
func (t *Table) Build(name RouteName, params map[string]string) (string, error) {
	r, err := t.Lookup(name)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(r.segments))
	for _, seg := range r.segments {
		if strings.HasPrefix(seg, ":") {
			v, ok := params[seg[1:]]
			if !ok || v == "" {
				return "", fmt.Errorf("route %s: missing parameter %s", name, seg[1:])
			}
			seg = v
		}
		parts = append(parts, seg)
	}
	return "/" + strings.Join(parts, "/"), nil
}

func matchSegments(pattern, segments []string) (map[string]string, int, bool) {
	if len(pattern) != len(segments) {
		return nil, 0, false
	}
	params := map[string]string{}
	static := 0
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, 0, false
		}
		static++
	}
	return params, static, true
}

func joinPath(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return child
	}
	return strings.TrimSuffix(parent, "/") + "/" + child
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
