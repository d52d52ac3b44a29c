package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func intPtr(n int) *int    { return &n }
func uintPtr(n uint) *uint { return &n }

func stock(n int) *StockCount { return &StockCount{Count: n, Valid: true} }

func product(id uint, q *StockCount, mods ...Modifier) Product {
	return Product{ID: id, ProductName: "item", ProductPrice: 100, Quantity: q, Modificators: mods}
}

// apply mirrors what the handlers do with a merge result.
func apply(ls CartLines, res MergeResult) CartLines {
	switch res.Op {
	case OpCreate:
		return append(ls, res.Line)
	case OpUpdate:
		for i := range ls {
			if ls[i].ProductID == res.Line.ProductID && sameModifier(ls[i].ModifierID, res.Line.ModifierID) {
				ls[i] = res.Line
			}
		}
	case OpDelete:
		out := ls[:0]
		for _, l := range ls {
			if l.ProductID == res.Line.ProductID && sameModifier(l.ModifierID, res.Line.ModifierID) {
				continue
			}
			out = append(out, l)
		}
		return out
	}
	return ls
}

func TestLimitOf(t *testing.T) {
	tests := []struct {
		name      string
		q         *StockCount
		unlimited bool
		count     int
	}{
		{name: "absentFieldIsUnlimited", q: nil, unlimited: true},
		{name: "validCount", q: stock(3), count: 3},
		{name: "zeroCount", q: stock(0), count: 0},
		{name: "invalidIsZeroNotUnlimited", q: &StockCount{}, count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := LimitOf(tt.q)
			if limit.Unlimited != tt.unlimited || limit.Count != tt.count {
				t.Errorf("LimitOf() = %+v, want unlimited=%v count=%d", limit, tt.unlimited, tt.count)
			}
		})
	}
}

func TestStockCountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *StockCount
	}{
		{name: "number", body: `{"id":1,"quantity":5}`, want: stock(5)},
		{name: "nullIsInvalid", body: `{"id":1,"quantity":null}`, want: &StockCount{}},
		{name: "garbageIsInvalid", body: `{"id":1,"quantity":"many"}`, want: &StockCount{}},
		{name: "negativeIsInvalid", body: `{"id":1,"quantity":-2}`, want: &StockCount{}},
		{name: "absentIsNil", body: `{"id":1}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			switch {
			case tt.want == nil:
				if p.Quantity != nil {
					t.Errorf("Quantity = %+v, want nil", p.Quantity)
				}
			case p.Quantity == nil:
				t.Errorf("Quantity = nil, want %+v", tt.want)
			case *p.Quantity != *tt.want:
				t.Errorf("Quantity = %+v, want %+v", *p.Quantity, *tt.want)
			}
		})
	}
}

func TestAddRejectsNullStockFromJSON(t *testing.T) {
	var p Product
	if err := json.Unmarshal([]byte(`{"id":5,"productName":"item","productPrice":100,"quantity":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// An explicit null must survive decoding as a hard zero, never as an
	// absent field.
	if limit := LimitOf(p.Quantity); limit.Unlimited {
		t.Fatal("null quantity decoded as unlimited stock")
	}

	var cart CartLines
	if _, err := cart.Add(p, nil, 1, false); !errors.Is(err, ErrStockLimit) {
		t.Fatalf("add err = %v, want ErrStockLimit", err)
	}

	var absent Product
	if err := json.Unmarshal([]byte(`{"id":5,"productName":"item","productPrice":100}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := cart.Add(absent, nil, 10, false); err != nil {
		t.Fatalf("absent-field add err = %v, want unlimited", err)
	}
}

func TestAddRespectsStock(t *testing.T) {
	p := product(5, stock(3))

	var cart CartLines
	for i := 0; i < 3; i++ {
		res, err := cart.Add(p, nil, 1, false)
		if err != nil {
			t.Fatalf("add %d: %v", i+1, err)
		}
		cart = apply(cart, res)
	}

	if len(cart) != 1 {
		t.Fatalf("len(cart) = %d, want 1 merged line", len(cart))
	}
	if cart[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", cart[0].Quantity)
	}
	if cart[0].LineID() != "5" {
		t.Errorf("LineID() = %q, want %q", cart[0].LineID(), "5")
	}

	// Fourth unit does not fit; the cart must not change.
	if _, err := cart.Add(p, nil, 1, false); !errors.Is(err, ErrStockLimit) {
		t.Fatalf("4th add err = %v, want ErrStockLimit", err)
	}
	if cart[0].Quantity != 3 {
		t.Errorf("quantity after rejected add = %d, want 3", cart[0].Quantity)
	}
}

func TestAddNullStockRejected(t *testing.T) {
	p := product(7, &StockCount{}) // present but invalid: hard zero

	var cart CartLines
	if _, err := cart.Add(p, nil, 1, false); !errors.Is(err, ErrStockLimit) {
		t.Fatalf("err = %v, want ErrStockLimit", err)
	}
}

func TestAddAbsentStockUnlimited(t *testing.T) {
	p := product(7, nil)

	var cart CartLines
	res, err := cart.Add(p, nil, 500, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	cart = apply(cart, res)
	if cart[0].Quantity != 500 {
		t.Errorf("quantity = %d, want 500", cart[0].Quantity)
	}
	if cart[0].Available != nil {
		t.Errorf("snapshot = %v, want nil for unlimited", *cart[0].Available)
	}
}

func TestStockSharedAcrossModifiers(t *testing.T) {
	small := Modifier{ID: 1, Name: "small", Price: 80}
	large := Modifier{ID: 2, Name: "large", Price: 120}
	p := product(9, stock(3), small, large)

	var cart CartLines
	res, err := cart.Add(p, &small, 2, false)
	if err != nil {
		t.Fatalf("add small: %v", err)
	}
	cart = apply(cart, res)

	res, err = cart.Add(p, &large, 1, false)
	if err != nil {
		t.Fatalf("add large: %v", err)
	}
	cart = apply(cart, res)

	if len(cart) != 2 {
		t.Fatalf("len(cart) = %d, want 2 variant lines", len(cart))
	}
	if cart[0].LineID() != "9,1" || cart[1].LineID() != "9,2" {
		t.Errorf("line ids = %q, %q", cart[0].LineID(), cart[1].LineID())
	}
	if got := cart.TotalFor(9); got != 3 {
		t.Fatalf("TotalFor = %d, want 3", got)
	}

	// Stock is spent across both variants.
	if _, err := cart.Add(p, &small, 1, false); !errors.Is(err, ErrStockLimit) {
		t.Errorf("add past aggregate limit err = %v, want ErrStockLimit", err)
	}
}

func TestAddMergesDuplicateIdentity(t *testing.T) {
	size := Modifier{ID: 3, Name: "medium", Price: 90}
	p := product(4, stock(10), size)

	var cart CartLines
	for i := 0; i < 2; i++ {
		res, err := cart.Add(p, &size, 1, false)
		if err != nil {
			t.Fatalf("add %d: %v", i+1, err)
		}
		cart = apply(cart, res)
	}

	if len(cart) != 1 {
		t.Fatalf("len(cart) = %d, duplicate identity must merge", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", cart[0].Quantity)
	}
}

func TestAddClampTrimsToRemaining(t *testing.T) {
	p := product(6, stock(2))

	var cart CartLines
	res, err := cart.Add(p, nil, 5, true)
	if err != nil {
		t.Fatalf("clamped add: %v", err)
	}
	cart = apply(cart, res)
	if cart[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2 (clamped)", cart[0].Quantity)
	}

	// Without clamp the same overshoot is rejected whole.
	var fresh CartLines
	if _, err := fresh.Add(p, nil, 5, false); !errors.Is(err, ErrStockLimit) {
		t.Errorf("strict overshoot err = %v, want ErrStockLimit", err)
	}
}

func TestIncrementBoundedBySnapshot(t *testing.T) {
	cart := CartLines{
		{ProductID: 5, Quantity: 2, Available: intPtr(2)},
	}

	if _, err := cart.Increment(5, nil); !errors.Is(err, ErrStockLimit) {
		t.Errorf("increment at limit err = %v, want ErrStockLimit", err)
	}

	// Absent snapshot means the product never reported stock: unlimited.
	cart[0].Available = nil
	res, err := cart.Increment(5, nil)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if res.Op != OpUpdate || res.Line.Quantity != 3 {
		t.Errorf("result = %+v, want update to 3", res)
	}
}

func TestIncrementMissingLineNoop(t *testing.T) {
	var cart CartLines
	res, err := cart.Increment(99, nil)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if res.Op != OpNone {
		t.Errorf("op = %v, want OpNone", res.Op)
	}
}

func TestDecrement(t *testing.T) {
	cart := CartLines{
		{ProductID: 5, ModifierID: uintPtr(1), Quantity: 2},
	}

	res := cart.Decrement(5, uintPtr(1))
	if res.Op != OpUpdate || res.Line.Quantity != 1 {
		t.Fatalf("first decrement = %+v, want update to 1", res)
	}
	cart = apply(cart, res)

	res = cart.Decrement(5, uintPtr(1))
	if res.Op != OpDelete {
		t.Fatalf("second decrement = %+v, want delete", res)
	}
	cart = apply(cart, res)
	if len(cart) != 0 {
		t.Fatalf("len(cart) = %d, want 0", len(cart))
	}

	// The identity is free again.
	p := product(5, stock(3), Modifier{ID: 1, Name: "s", Price: 50})
	mod := p.Modificators[0]
	res2, err := cart.Add(p, &mod, 1, false)
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if res2.Op != OpCreate {
		t.Errorf("re-add op = %v, want OpCreate", res2.Op)
	}

	// Unknown identities are a no-op.
	if res := cart.Decrement(123, nil); res.Op != OpNone {
		t.Errorf("unknown decrement op = %v, want OpNone", res.Op)
	}
}

func TestLineID(t *testing.T) {
	tests := []struct {
		name string
		line CartLine
		want string
	}{
		{name: "noModifier", line: CartLine{ProductID: 5}, want: "5"},
		{name: "withModifier", line: CartLine{ProductID: 5, ModifierID: uintPtr(3)}, want: "5,3"},
		{name: "zeroModifierIsDistinct", line: CartLine{ProductID: 5, ModifierID: uintPtr(0)}, want: "5,0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.LineID(); got != tt.want {
				t.Errorf("LineID() = %q, want %q", got, tt.want)
			}
		})
	}
}
