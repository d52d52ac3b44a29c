package models

import (
	"errors"
	"strconv"
	"time"
)

// ErrStockLimit signals that an add or increment would push the cart past
// the product's purchasable stock. It is a user-recoverable condition the
// handler surfaces to the client, never a server failure.
var ErrStockLimit = errors.New("stock limit reached")

// CartLine is one entry of a session's cart. Lines for the same product
// with different modifiers are distinct; a nil ModifierID means the
// product was added without selecting a modifier.
type CartLine struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	SessionID    string    `gorm:"index" json:"-"`
	ProductID    uint      `json:"productId"`
	ModifierID   *uint     `json:"modifierId,omitempty"`
	Quantity     int       `json:"quantity"`
	Available    *int      `json:"availableQuantity,omitempty"` // stock snapshot at add time; nil = upstream had no stock field
	ProductName  string    `json:"productName"`
	ProductPhoto string    `json:"productPhoto"`
	Price        float64   `json:"price"`
	ModifierName string    `json:"modifierName,omitempty"`
	CategoryID   uint      `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	AddedAt      time.Time `json:"addedAt"`
}

// LineID renders the composite identity the client understands:
// "<productId>" without a modifier, "<productId>,<modifierId>" with one.
func (l CartLine) LineID() string {
	if l.ModifierID == nil {
		return strconv.FormatUint(uint64(l.ProductID), 10)
	}
	return strconv.FormatUint(uint64(l.ProductID), 10) + "," + strconv.FormatUint(uint64(*l.ModifierID), 10)
}

func sameModifier(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// StockLimit is the purchasable ceiling for one product. Unlimited means
// the payload carried no stock field at all; an explicit null or
// malformed value is a hard zero, not unlimited.
type StockLimit struct {
	Unlimited bool
	Count     int
}

// LimitOf maps an upstream stock field to a limit: absent => unlimited,
// invalid => zero, otherwise the reported count.
func LimitOf(q *StockCount) StockLimit {
	if q == nil {
		return StockLimit{Unlimited: true}
	}
	if !q.Valid {
		return StockLimit{}
	}
	return StockLimit{Count: q.Count}
}

// SnapshotLimit maps a cart line's stored stock snapshot to a limit.
func SnapshotLimit(avail *int) StockLimit {
	if avail == nil {
		return StockLimit{Unlimited: true}
	}
	if *avail < 0 {
		return StockLimit{}
	}
	return StockLimit{Count: *avail}
}

// Snapshot returns the value to store on a new cart line.
func (l StockLimit) Snapshot() *int {
	if l.Unlimited {
		return nil
	}
	n := l.Count
	return &n
}

// Remaining is how many more units fit under the limit given the current
// cart total for the product. Unlimited limits never run out.
func (l StockLimit) Remaining(total int) int {
	if l.Unlimited {
		return int(^uint(0) >> 1)
	}
	if l.Count <= total {
		return 0
	}
	return l.Count - total
}

// CartLines is a session's full cart.
type CartLines []CartLine

// TotalFor sums quantities across every modifier variant of a product.
func (ls CartLines) TotalFor(productID uint) int {
	total := 0
	for _, l := range ls {
		if l.ProductID == productID {
			total += l.Quantity
		}
	}
	return total
}

func (ls CartLines) indexOf(productID uint, modifierID *uint) int {
	for i, l := range ls {
		if l.ProductID == productID && sameModifier(l.ModifierID, modifierID) {
			return i
		}
	}
	return -1
}

// FindLine returns the line with the given composite identity, or nil.
func (ls CartLines) FindLine(productID uint, modifierID *uint) *CartLine {
	if i := ls.indexOf(productID, modifierID); i >= 0 {
		return &ls[i]
	}
	return nil
}

// MergeOp says what a merge decided so the caller can persist it.
type MergeOp int

const (
	OpNone MergeOp = iota
	OpCreate
	OpUpdate
	OpDelete
)

// MergeResult carries the single line a cart mutation touches.
type MergeResult struct {
	Op   MergeOp
	Line CartLine
}

// Add resolves an add-to-cart request against the cart. The aggregate
// quantity across all modifier variants of the product may never exceed
// the product's stock. With clamp set (quantity-selector flow) the
// requested quantity is trimmed to what still fits; otherwise any
// overshoot is rejected whole.
func (ls CartLines) Add(p Product, mod *Modifier, qty int, clamp bool) (MergeResult, error) {
	if qty < 1 {
		qty = 1
	}
	limit := LimitOf(p.Quantity)
	remaining := limit.Remaining(ls.TotalFor(p.ID))
	if remaining <= 0 {
		return MergeResult{}, ErrStockLimit
	}
	if qty > remaining {
		if !clamp {
			return MergeResult{}, ErrStockLimit
		}
		qty = remaining
	}

	var modID *uint
	price := p.ProductPrice
	modName := ""
	if mod != nil {
		id := mod.ID
		modID = &id
		price = mod.Price
		modName = mod.Name
	}

	if found := ls.FindLine(p.ID, modID); found != nil {
		line := *found
		line.Quantity += qty
		return MergeResult{Op: OpUpdate, Line: line}, nil
	}

	cat := p.PrimaryCategory()
	photo := p.ProductPhoto
	if photo == "" {
		photo = p.ProductPhotoSmall
	}
	return MergeResult{Op: OpCreate, Line: CartLine{
		ProductID:    p.ID,
		ModifierID:   modID,
		Quantity:     qty,
		Available:    limit.Snapshot(),
		ProductName:  p.ProductName,
		ProductPhoto: photo,
		Price:        price,
		ModifierName: modName,
		CategoryID:   cat.ID,
		CategoryName: cat.CategoryName,
		AddedAt:      time.Now(),
	}}, nil
}

// Increment bumps an existing line by one, bounded by the stock snapshot
// taken when the line was first added. A missing line is a no-op.
func (ls CartLines) Increment(productID uint, modifierID *uint) (MergeResult, error) {
	found := ls.FindLine(productID, modifierID)
	if found == nil {
		return MergeResult{Op: OpNone}, nil
	}
	if SnapshotLimit(found.Available).Remaining(ls.TotalFor(productID)) <= 0 {
		return MergeResult{}, ErrStockLimit
	}
	line := *found
	line.Quantity++
	return MergeResult{Op: OpUpdate, Line: line}, nil
}

// Decrement lowers an existing line by one; at zero the line is removed.
// Decrementing a non-existent line is a no-op.
func (ls CartLines) Decrement(productID uint, modifierID *uint) MergeResult {
	found := ls.FindLine(productID, modifierID)
	if found == nil {
		return MergeResult{Op: OpNone}
	}
	line := *found
	line.Quantity--
	if line.Quantity <= 0 {
		return MergeResult{Op: OpDelete, Line: line}
	}
	return MergeResult{Op: OpUpdate, Line: line}
}
