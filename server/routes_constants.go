package server

// APIPrefix is the path every mall endpoint is mounted under
const APIPrefix = "/api"

// Route path constants, relative to APIPrefix
const (
	// Account
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteRegister = "/register"
	RouteProfile  = "/customer/profile"

	// Catalog
	RouteProducts = "/product"
	RouteProduct  = "/product/{id:[0-9]+}"

	// Cart
	RouteCart     = "/cart"
	RouteCartItem = "/cart/{id:[0-9]+}"

	// Orders
	RouteOrders      = "/order"
	RouteOrdersAll   = "/order/all"
	RouteOrder       = "/order/{id:[0-9]+}"
	RouteOrderStatus = "/order/{id:[0-9]+}/status"

	// Statistics (administrator only)
	RouteStats            = "/stats"
	RouteStatsDaily       = "/stats/daily"
	RouteStatsMonthly     = "/stats/monthly"
	RouteStatsTopProducts = "/stats/top-products"
	RouteStatsTop         = "/stats/top"
	RouteStatsStatus      = "/stats/status"
)
