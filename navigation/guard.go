// Package navigation decides whether a navigation to a storefront page may
// proceed for the current session, and where to send it otherwise.
package navigation

// RouteName is the stable logical name of a navigable page
type RouteName string

const (
	RouteLogin            RouteName = "login"
	RouteRegister         RouteName = "register"
	RouteHome             RouteName = "home"
	RouteCart             RouteName = "cart"
	RouteProfile          RouteName = "profile"
	RouteOrders           RouteName = "orders"
	RouteAdminDashboard   RouteName = "admin-dashboard"
	RouteAdminProducts    RouteName = "admin-products"
	RouteAdminProductAdd  RouteName = "admin-product-add"
	RouteAdminProductEdit RouteName = "admin-product-edit"
	RouteAdminOrders      RouteName = "admin-orders"
	RouteAdminOrderDetail RouteName = "admin-order-detail"
	RouteAdminStats       RouteName = "admin-stats"
)

// AdminLanding is where an authenticated administrator lands after login
const AdminLanding = RouteAdminProducts

// Requirements are the access rules a page declares. The zero value means
// the page is unrestricted.
type Requirements struct {
	RequiresAuth  bool
	RequiresAdmin bool
}

// Merge returns the union of both requirement sets
func (r Requirements) Merge(other Requirements) Requirements {
	return Requirements{
		RequiresAuth:  r.RequiresAuth || other.RequiresAuth,
		RequiresAdmin: r.RequiresAdmin || other.RequiresAdmin,
	}
}

// Target is the page a navigation is heading to
type Target struct {
	Name RouteName
	Requirements
}

// SessionState is the part of the session the guard consults
type SessionState struct {
	Authenticated bool
	Admin         bool
}

// Decision is the guard's verdict. When Allow is false, Redirect names the
// page to go to instead.
type Decision struct {
	Allow    bool
	Redirect RouteName
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to RouteName) Decision {
	return Decision{Redirect: to}
}

// Evaluate applies the navigation rules in order; the first that matches wins:
//  1. authentication required but absent: go to login
//  2. administrator required but absent: go home
//  3. login page while authenticated: go to the landing page for the role
//  4. otherwise allow
func Evaluate(target Target, s SessionState) Decision {
	if target.RequiresAuth && !s.Authenticated {
		return redirect(RouteLogin)
	}

	if target.RequiresAdmin && !s.Admin {
		return redirect(RouteHome)
	}

	if target.Name == RouteLogin && s.Authenticated {
		if s.Admin {
			return redirect(AdminLanding)
		}
		return redirect(RouteHome)
	}

	return allow()
}
