package server

import "net/http"

func (s *Server) initRoutes() {
	public := s.APIMiddleware()
	authed := s.APIMiddleware(s.RequireAuth())
	admin := s.APIMiddleware(s.RequireAuth(), s.RequireAdmin())

	// ACCOUNT
	s.RegisterRouteFunc(http.MethodPost, RouteLogin, ChainMiddleware(s.LoginHandler(), public...))
	s.RegisterRouteFunc(http.MethodPost, RouteLogout, ChainMiddleware(s.LogoutHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, RouteRegister, ChainMiddleware(s.RegisterHandler(), public...))
	s.RegisterRouteFunc(http.MethodGet, RouteProfile, ChainMiddleware(s.ProfileHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPut, RouteProfile, ChainMiddleware(s.UpdateProfileHandler(), authed...))

	// CATALOG
	s.RegisterRouteFunc(http.MethodGet, RouteProducts, ChainMiddleware(s.ListProductsHandler(), public...))
	s.RegisterRouteFunc(http.MethodGet, RouteProduct, ChainMiddleware(s.ProductHandler(), public...))
	s.RegisterRouteFunc(http.MethodPost, RouteProducts, ChainMiddleware(s.CreateProductHandler(), admin...))
	s.RegisterRouteFunc(http.MethodPut, RouteProduct, ChainMiddleware(s.UpdateProductHandler(), admin...))
	s.RegisterRouteFunc(http.MethodDelete, RouteProduct, ChainMiddleware(s.DeleteProductHandler(), admin...))

	// CART
	s.RegisterRouteFunc(http.MethodGet, RouteCart, ChainMiddleware(s.CartHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPost, RouteCart, ChainMiddleware(s.AddCartItemHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPut, RouteCartItem, ChainMiddleware(s.UpdateCartItemHandler(), authed...))
	s.RegisterRouteFunc(http.MethodDelete, RouteCartItem, ChainMiddleware(s.DeleteCartItemHandler(), authed...))

	// ORDERS
	s.RegisterRouteFunc(http.MethodPost, RouteOrders, ChainMiddleware(s.CreateOrderHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, RouteOrders, ChainMiddleware(s.ListOrdersHandler(), authed...))
	s.RegisterRouteFunc(http.MethodGet, RouteOrdersAll, ChainMiddleware(s.ListAllOrdersHandler(), admin...))
	s.RegisterRouteFunc(http.MethodGet, RouteOrder, ChainMiddleware(s.OrderHandler(), authed...))
	s.RegisterRouteFunc(http.MethodDelete, RouteOrder, ChainMiddleware(s.DeleteOrderHandler(), authed...))
	s.RegisterRouteFunc(http.MethodPut, RouteOrderStatus, ChainMiddleware(s.UpdateOrderStatusHandler(), admin...))

	// STATS
	s.RegisterRouteFunc(http.MethodGet, RouteStats, ChainMiddleware(s.StatsOverviewHandler(), admin...))
	s.RegisterRouteFunc(http.MethodGet, RouteStatsDaily, ChainMiddleware(s.DailySalesHandler(), admin...))
	s.RegisterRouteFunc(http.MethodGet, RouteStatsMonthly, ChainMiddleware(s.MonthlySalesHandler(), admin...))
	s.RegisterRouteFunc(http.MethodGet, RouteStatsTopProducts, ChainMiddleware(s.TopProductsHandler(), admin...))
	s.RegisterRouteFunc(http.MethodGet, RouteStatsTop, ChainMiddleware(s.TopProductsHandler(), admin...))
	s.RegisterRouteFunc(http.MethodGet, RouteStatsStatus, ChainMiddleware(s.OrderStatusStatsHandler(), admin...))
}
