package fakecartremote

import (
	"context"
	"slices"
	"sync"

	"github.com/jrsteele09/go-mall-client/cart"
	mallerrors "github.com/jrsteele09/go-mall-client/internal/errors"
	"github.com/jrsteele09/go-mall-client/mallmodel"
)

var _ cart.Remote = (*FakeRemote)(nil)

// FakeRemote is an in-memory cart API. Failures can be injected per call and
// every call is recorded.
type FakeRemote struct {
	lock    sync.Mutex
	lines   []mallmodel.CartItem
	nextID  int64
	nextOrd int64
	calls   []string
	deletes []int64

	// ConsumeOnOrder makes CreateOrder remove the ordered lines, as the real API does
	ConsumeOnOrder bool

	FailGet    error
	FailAdd    error
	FailUpdate error
	FailOrder  error
	// FailDelete maps a cart line id to the error its delete returns
	FailDelete map[int64]error

	// OnGet runs at the start of every GetCart
	OnGet func()
}

func NewFakeRemote(lines ...mallmodel.CartItem) *FakeRemote {
	f := &FakeRemote{
		nextID:     1,
		nextOrd:    1,
		FailDelete: make(map[int64]error),
	}
	for _, line := range lines {
		f.lines = append(f.lines, line)
		if line.CartID >= f.nextID {
			f.nextID = line.CartID + 1
		}
	}
	return f
}

func (f *FakeRemote) record(call string) {
	f.calls = append(f.calls, call)
}

// Calls returns the names of the calls made so far
func (f *FakeRemote) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return slices.Clone(f.calls)
}

// Deletes returns the line ids passed to DeleteCartItem, in order
func (f *FakeRemote) Deletes() []int64 {
	f.lock.Lock()
	defer f.lock.Unlock()
	return slices.Clone(f.deletes)
}

// Lines returns the server-side cart
func (f *FakeRemote) Lines() []mallmodel.CartItem {
	f.lock.Lock()
	defer f.lock.Unlock()
	return slices.Clone(f.lines)
}

// SetLines replaces the server-side cart
func (f *FakeRemote) SetLines(lines ...mallmodel.CartItem) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.lines = slices.Clone(lines)
}

func (f *FakeRemote) GetCart(_ context.Context) ([]mallmodel.CartItem, error) {
	if f.OnGet != nil {
		f.OnGet()
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.record("GetCart")

	if f.FailGet != nil {
		return nil, f.FailGet
	}
	return slices.Clone(f.lines), nil
}

func (f *FakeRemote) AddCartItem(_ context.Context, productID int64, quantity int) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.record("AddCartItem")

	if f.FailAdd != nil {
		return f.FailAdd
	}
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity += quantity
			return nil
		}
	}
	f.lines = append(f.lines, mallmodel.CartItem{
		CartID:        f.nextID,
		ProductID:     productID,
		Quantity:      quantity,
		StockQuantity: 100,
	})
	f.nextID++
	return nil
}

func (f *FakeRemote) UpdateCartItemQuantity(_ context.Context, cartID int64, quantity int) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.record("UpdateCartItemQuantity")

	if f.FailUpdate != nil {
		return f.FailUpdate
	}
	for i := range f.lines {
		if f.lines[i].CartID == cartID {
			f.lines[i].Quantity = quantity
			return nil
		}
	}
	return mallerrors.ErrCartItemNotFound
}

func (f *FakeRemote) DeleteCartItem(_ context.Context, cartID int64) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.record("DeleteCartItem")
	f.deletes = append(f.deletes, cartID)

	if err := f.FailDelete[cartID]; err != nil {
		return err
	}
	for i := range f.lines {
		if f.lines[i].CartID == cartID {
			f.lines = slices.Delete(f.lines, i, i+1)
			return nil
		}
	}
	return mallerrors.ErrCartItemNotFound
}

func (f *FakeRemote) CreateOrder(_ context.Context, draft mallmodel.OrderDraft) (int64, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.record("CreateOrder")

	if f.FailOrder != nil {
		return 0, f.FailOrder
	}
	if f.ConsumeOnOrder {
		f.lines = slices.DeleteFunc(f.lines, func(line mallmodel.CartItem) bool {
			return slices.Contains(draft.CartItemIDs, line.CartID)
		})
	}
	id := f.nextOrd
	f.nextOrd++
	return id, nil
}
