// Package cart keeps a local view of the remote shopping cart. Every mutation
// is sent to the API and followed by a full re-fetch, so the visible lines are
// always what the server last reported.
package cart

import (
	"context"
	"slices"
	"sync"

	"github.com/jrsteele09/go-mall-client/api"
	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/rs/zerolog/log"
)

// OrderOutcome describes an accepted order. Remaining lists the ordered cart
// lines that could not be confirmed as removed afterwards.
type OrderOutcome struct {
	OrderID   int64
	Remaining []int64
}

// Store is the cart view for one session. Operations are serialized: a call
// waits for any in-flight operation to finish before it starts, so the visible
// cart always reflects a serial sequence of mutations.
type Store struct {
	remote Remote

	ops sync.Mutex // held for the duration of each remote operation

	lock    sync.RWMutex
	items   []mallmodel.CartItem
	loading int
	lastErr string
}

func NewStore(remote Remote) *Store {
	return &Store{
		remote: remote,
		items:  []mallmodel.CartItem{},
	}
}

// Items returns a copy of the current cart lines
func (s *Store) Items() []mallmodel.CartItem {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) Loading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.loading > 0
}

// LastError is the message of the most recent failure, empty if the last
// operation succeeded
func (s *Store) LastError() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.lastErr
}

// TotalItems is the sum of quantities over all lines
func (s *Store) TotalItems() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines
func (s *Store) TotalPrice() float64 {
	s.lock.RLock()
	defer s.lock.RUnlock()

	total := 0.0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// LineIDs returns the cart line ids in display order
func (s *Store) LineIDs() []int64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return lineIDs(s.items)
}

// FetchCartItems replaces the cart lines with the server's current cart
func (s *Store) FetchCartItems(ctx context.Context) bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	defer s.end()

	if err := s.fetch(ctx); err != nil {
		s.fail(err, "Failed to fetch cart")
		return false
	}
	return true
}

// AddToCart adds quantity of a product; quantities below one are sent as one
func (s *Store) AddToCart(ctx context.Context, productID int64, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}

	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	defer s.end()

	if err := s.remote.AddCartItem(ctx, productID, quantity); err != nil {
		s.fail(err, "Failed to add item to cart")
		return false
	}
	if err := s.fetch(ctx); err != nil {
		s.fail(err, "Failed to fetch cart")
		return false
	}
	return true
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, cartID int64, quantity int) bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	defer s.end()

	if err := s.remote.UpdateCartItemQuantity(ctx, cartID, quantity); err != nil {
		s.fail(err, "Failed to update cart item quantity")
		return false
	}
	if err := s.fetch(ctx); err != nil {
		s.fail(err, "Failed to fetch cart")
		return false
	}
	return true
}

func (s *Store) RemoveCartItem(ctx context.Context, cartID int64) bool {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	defer s.end()

	if _, err := s.remove(ctx, cartID); err != nil {
		s.fail(err, "Failed to remove cart item")
		return false
	}
	return true
}

// ClearCart removes every line held at the time of the call, one at a time.
// It stops at the first failure and returns the ids that were not removed.
func (s *Store) ClearCart(ctx context.Context) ([]int64, bool) {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	defer s.end()

	return s.clear(ctx, s.LineIDs())
}

// CreateOrder submits every held line with shippingAddress. Once the server
// accepts the order the ordered lines are cleared; ok reports acceptance and
// the outcome lists any ordered line that could not be cleared. The order is
// never rolled back.
func (s *Store) CreateOrder(ctx context.Context, shippingAddress string) (OrderOutcome, bool) {
	s.ops.Lock()
	defer s.ops.Unlock()
	s.begin()
	defer s.end()

	ordered := s.LineIDs()
	draft := mallmodel.OrderDraft{
		ShippingAddress: shippingAddress,
		CartItemIDs:     ordered,
	}

	orderID, err := s.remote.CreateOrder(ctx, draft)
	if err != nil {
		s.fail(err, "Failed to create order")
		return OrderOutcome{}, false
	}
	log.Info().Int64("order_id", orderID).Int("lines", len(ordered)).Msg("Order created")

	outcome := OrderOutcome{OrderID: orderID}

	// The server normally consumes the ordered lines itself; resync first and
	// only remove what it still reports.
	if err := s.fetch(ctx); err != nil {
		s.fail(err, "Failed to fetch cart")
		outcome.Remaining = ordered
		return outcome, true
	}

	present := make(map[int64]bool)
	for _, id := range s.LineIDs() {
		present[id] = true
	}
	var leftover []int64
	for _, id := range ordered {
		if present[id] {
			leftover = append(leftover, id)
		}
	}

	outcome.Remaining, _ = s.clear(ctx, leftover)
	return outcome, true
}

// clear removes ids in order, stopping at the first failure
func (s *Store) clear(ctx context.Context, ids []int64) ([]int64, bool) {
	for i, id := range ids {
		removed, err := s.remove(ctx, id)
		if err == nil {
			continue
		}
		s.fail(err, "Failed to clear cart")
		if removed {
			return slices.Clone(ids[i+1:]), false
		}
		return slices.Clone(ids[i:]), false
	}
	return nil, true
}

// remove deletes a line and resyncs. removed reports whether the server
// accepted the delete, independently of the resync.
func (s *Store) remove(ctx context.Context, cartID int64) (removed bool, err error) {
	if err := s.remote.DeleteCartItem(ctx, cartID); err != nil {
		return false, err
	}
	return true, s.fetch(ctx)
}

func (s *Store) fetch(ctx context.Context) error {
	items, err := s.remote.GetCart(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []mallmodel.CartItem{}
	}

	s.lock.Lock()
	s.items = slices.Clone(items)
	s.lock.Unlock()
	return nil
}

func (s *Store) begin() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.loading++
	s.lastErr = ""
}

func (s *Store) end() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.loading--
}

func (s *Store) fail(err error, msg string) {
	message := api.Message(err)
	if message == "" {
		message = msg
	}
	log.Err(err).Msg(msg)

	s.lock.Lock()
	defer s.lock.Unlock()
	s.lastErr = message
}

func lineIDs(items []mallmodel.CartItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.CartID)
	}
	return ids
}
