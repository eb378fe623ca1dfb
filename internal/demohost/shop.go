package demohost

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hayloft-mods/hayloft/pkg/intercept"
)

// Entry is one shop transaction, recorded whether or not it succeeded.
type Entry struct {
	Op       string // "purchase" or "refund"
	ItemID   string
	Quantity int
	PlayerID int // zero for refunds
	OK       bool
}

// Ledger is a point-in-time snapshot of the shop's books.
type Ledger struct {
	Gold  int64
	Stock map[string]int64
}

// String renders the ledger with items in a stable order.
func (l Ledger) String() string {
	items := make([]string, 0, len(l.Stock))
	for id := range l.Stock {
		items = append(items, id)
	}
	sort.Strings(items)

	var b strings.Builder
	fmt.Fprintf(&b, "gold=%d", l.Gold)
	for _, id := range items {
		fmt.Fprintf(&b, " %s=%d", id, l.Stock[id])
	}
	return b.String()
}

// ShopMenu is the gameplay object the demo patches. It tracks the player's
// gold, the shop's stock, and a journal of every transaction attempt.
//
// All methods are safe for concurrent use.
type ShopMenu struct {
	mu      sync.Mutex
	gold    int64
	prices  map[string]int64
	stock   map[string]int64
	journal []Entry
}

// NewShopMenu returns a shop stocked with farm goods and a starting purse.
func NewShopMenu() *ShopMenu {
	return &ShopMenu{
		gold: 5000,
		prices: map[string]int64{
			"parsnip_seeds":     20,
			"hay":               50,
			"iridium_sprinkler": 1000,
		},
		stock: map[string]int64{
			"parsnip_seeds":     500,
			"hay":               200,
			"iridium_sprinkler": 3,
		},
	}
}

// TryPurchase buys quantity units of itemID for the given player. It fails
// without side effects when the item is unknown, the quantity is not
// positive, the shop lacks stock, or the purse lacks gold.
func (s *ShopMenu) TryPurchase(itemID string, quantity int, playerID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.tryPurchaseLocked(itemID, quantity)
	s.journal = append(s.journal, Entry{
		Op:       "purchase",
		ItemID:   itemID,
		Quantity: quantity,
		PlayerID: playerID,
		OK:       ok,
	})
	return ok
}

func (s *ShopMenu) tryPurchaseLocked(itemID string, quantity int) bool {
	price, known := s.prices[itemID]
	if !known || quantity <= 0 {
		return false
	}
	if s.stock[itemID] < int64(quantity) {
		return false
	}
	cost := price * int64(quantity)
	if s.gold < cost {
		return false
	}

	s.stock[itemID] -= int64(quantity)
	s.gold -= cost
	return true
}

// Refund returns quantity units of itemID to the shop and pays the purchase
// price back into the purse. Unknown items and non-positive quantities fail
// without side effects.
func (s *ShopMenu) Refund(itemID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, known := s.prices[itemID]
	ok := known && quantity > 0
	if ok {
		s.stock[itemID] += int64(quantity)
		s.gold += price * int64(quantity)
	}

	s.journal = append(s.journal, Entry{
		Op:       "refund",
		ItemID:   itemID,
		Quantity: quantity,
		OK:       ok,
	})
	return ok
}

// Ledger snapshots the current books.
func (s *ShopMenu) Ledger() Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock := make(map[string]int64, len(s.stock))
	for id, n := range s.stock {
		stock[id] = n
	}
	return Ledger{Gold: s.gold, Stock: stock}
}

// Journal returns a copy of every transaction attempt in order.
func (s *ShopMenu) Journal() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.journal))
	copy(out, s.journal)
	return out
}

// BindShop registers the menu's callables in the catalog under the name the
// host dispatches with, carrying the formal parameter names hooks match on.
func BindShop(catalog *intercept.Catalog, shop *ShopMenu) error {
	return catalog.BindInstance("ShopMenu", shop,
		intercept.WithMethodParamNames("TryPurchase", "itemID", "quantity", "playerID"),
		intercept.WithMethodParamNames("Refund", "itemID", "quantity"),
	)
}
