package models

import "encoding/json"

// Product is the upstream catalog shape. The catalog is owned by the
// organizations API; we never persist products, only read them.
type Product struct {
	ID                 uint        `json:"id"`
	ProductName        string      `json:"productName"`
	ProductDescription string      `json:"productDescription"`
	ProductPrice       float64     `json:"productPrice"`
	ProductPhoto       string      `json:"productPhoto"`
	ProductPhotoSmall  string      `json:"productPhotoSmall"`
	ProductPhotoLarge  string      `json:"productPhotoLarge"`
	Modificators       []Modifier  `json:"modificators"`
	Quantity           *StockCount `json:"quantity,omitempty"`
	Category           *Category   `json:"category,omitempty"`
	Categories         []Category  `json:"categories,omitempty"`
}

// Modifier is a named product variant (size) with its own price.
type Modifier struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Category struct {
	ID            uint   `json:"id"`
	CategoryName  string `json:"categoryName"`
	CategoryPhoto string `json:"categoryPhoto"`
}

// UnmarshalJSON keeps "quantity": null distinct from a missing quantity
// field. The stock field is decoded through a json.RawMessage because
// the standard decoder sets a pointer field to nil on null without ever
// calling the pointee's unmarshaler, which would collapse an explicit
// null into "absent".
func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	aux := struct {
		*product
		Quantity json.RawMessage `json:"quantity"`
	}{product: (*product)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Quantity != nil {
		var q StockCount
		if err := q.UnmarshalJSON(aux.Quantity); err != nil {
			return err
		}
		p.Quantity = &q
	}
	return nil
}

// StockCount is a stock field that may arrive as a number, null, or
// garbage. A missing field altogether decodes to a nil *StockCount,
// which callers must treat differently from an invalid value.
type StockCount struct {
	Count int
	Valid bool
}

func (s *StockCount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil || n < 0 {
		// null or malformed: present but unusable
		s.Count = 0
		s.Valid = false
		return nil
	}
	s.Count = n
	s.Valid = true
	return nil
}

func (s StockCount) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Count)
}

// PrimaryCategory returns the single category a cart line should carry:
// the explicit one, else the first of categories, else an empty category.
func (p Product) PrimaryCategory() Category {
	if p.Category != nil {
		return *p.Category
	}
	if len(p.Categories) > 0 {
		return p.Categories[0]
	}
	return Category{}
}
