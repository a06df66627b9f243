package navigation

// Session is what the Guard reads from the session store
type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Guard evaluates navigations against a route table and a live session
type Guard struct {
	table   *Table
	session Session
}

func NewGuard(table *Table, session Session) *Guard {
	return &Guard{
		table:   table,
		session: session,
	}
}

// State captures the session's current state
func (g *Guard) State() SessionState {
	authenticated := g.session.IsAuthenticated()
	return SessionState{
		Authenticated: authenticated,
		Admin:         authenticated && g.session.IsAdmin(),
	}
}

// Resolve evaluates a navigation to the named route
func (g *Guard) Resolve(name RouteName) (Decision, error) {
	r, err := g.table.Lookup(name)
	if err != nil {
		return Decision{}, err
	}
	return Evaluate(r.Target(), g.State()), nil
}

// ResolvePath evaluates a navigation to a concrete path
func (g *Guard) ResolvePath(path string) (Decision, map[string]string, error) {
	r, params, err := g.table.Match(path)
	if err != nil {
		return Decision{}, nil, err
	}
	return Evaluate(r.Target(), g.State()), params, nil
}
