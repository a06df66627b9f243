package navigation_test

import (
	"testing"

	"github.com/jrsteele09/go-mall-client/navigation"
	"github.com/stretchr/testify/require"
)

var (
	anonymous = navigation.SessionState{}
	customer  = navigation.SessionState{Authenticated: true}
	admin     = navigation.SessionState{Authenticated: true, Admin: true}
)

func TestEvaluate(t *testing.T) {
	public := navigation.Target{Name: navigation.RouteHome}
	authOnly := navigation.Target{Name: navigation.RouteCart, Requirements: navigation.Requirements{RequiresAuth: true}}
	adminOnly := navigation.Target{
		Name:         navigation.RouteAdminStats,
		Requirements: navigation.Requirements{RequiresAuth: true, RequiresAdmin: true},
	}
	login := navigation.Target{Name: navigation.RouteLogin}

	testCases := []struct {
		name     string
		target   navigation.Target
		state    navigation.SessionState
		expected navigation.Decision
	}{
		{"public anonymous", public, anonymous, navigation.Decision{Allow: true}},
		{"public customer", public, customer, navigation.Decision{Allow: true}},
		{"auth anonymous", authOnly, anonymous, navigation.Decision{Redirect: navigation.RouteLogin}},
		{"auth customer", authOnly, customer, navigation.Decision{Allow: true}},
		{"admin anonymous", adminOnly, anonymous, navigation.Decision{Redirect: navigation.RouteLogin}},
		{"admin customer goes home not login", adminOnly, customer, navigation.Decision{Redirect: navigation.RouteHome}},
		{"admin admin", adminOnly, admin, navigation.Decision{Allow: true}},
		{"login anonymous", login, anonymous, navigation.Decision{Allow: true}},
		{"login customer", login, customer, navigation.Decision{Redirect: navigation.RouteHome}},
		{"login admin", login, admin, navigation.Decision{Redirect: navigation.RouteAdminProducts}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, navigation.Evaluate(tc.target, tc.state))
		})
	}
}

func TestEvaluateAdminRequirementWithoutAuth(t *testing.T) {
	target := navigation.Target{Name: "reports", Requirements: navigation.Requirements{RequiresAdmin: true}}
	require.Equal(t, navigation.Decision{Redirect: navigation.RouteHome}, navigation.Evaluate(target, anonymous))
}

type fakeSession struct {
	authenticated bool
	admin         bool
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) IsAdmin() bool         { return f.admin }

func TestGuardResolve(t *testing.T) {
	session := &fakeSession{}
	guard := navigation.NewGuard(navigation.MustDefaultTable(), session)

	decision, err := guard.Resolve(navigation.RouteAdminOrders)
	require.NoError(t, err)
	require.Equal(t, navigation.RouteLogin, decision.Redirect)

	session.authenticated = true
	decision, err = guard.Resolve(navigation.RouteAdminOrders)
	require.NoError(t, err)
	require.Equal(t, navigation.RouteHome, decision.Redirect)

	decision, err = guard.Resolve(navigation.RouteLogin)
	require.NoError(t, err)
	require.Equal(t, navigation.RouteHome, decision.Redirect)

	session.admin = true
	decision, err = guard.Resolve(navigation.RouteAdminOrders)
	require.NoError(t, err)
	require.True(t, decision.Allow)

	decision, err = guard.Resolve(navigation.RouteLogin)
	require.NoError(t, err)
	require.Equal(t, navigation.RouteAdminProducts, decision.Redirect)

	_, err = guard.Resolve("nowhere")
	require.ErrorIs(t, err, navigation.ErrUnknownRoute)
}

func TestGuardIgnoresAdminFlagWithoutCredential(t *testing.T) {
	guard := navigation.NewGuard(navigation.MustDefaultTable(), &fakeSession{admin: true})
	require.Equal(t, navigation.SessionState{}, guard.State())

	decision, err := guard.Resolve(navigation.RouteLogin)
	require.NoError(t, err)
	require.True(t, decision.Allow)
}

func TestGuardResolvePath(t *testing.T) {
	guard := navigation.NewGuard(navigation.MustDefaultTable(), &fakeSession{authenticated: true, admin: true})

	decision, params, err := guard.ResolvePath("/admin/orders/17")
	require.NoError(t, err)
	require.True(t, decision.Allow)
	require.Equal(t, map[string]string{"id": "17"}, params)

	_, _, err = guard.ResolvePath("/missing/page")
	require.ErrorIs(t, err, navigation.ErrUnknownRoute)
}
