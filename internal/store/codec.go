package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Codec converts between the ledger document and its persisted JSON form
type Codec struct {
	validate *validator.Validate
}

// NewCodec creates a codec with record validation for decimal and date fields
func NewCodec() *Codec {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(civil.Date); ok && d.IsValid() {
			return d.String()
		}
		return nil
	}, civil.Date{})
	return &Codec{validate: v}
}

// wireDocument distinguishes missing or null keys from empty collections
type wireDocument struct {
	Accounts     *[]domain.Account     `json:"accounts"`
	Transactions *[]domain.Transaction `json:"transactions"`
	Goals        *[]domain.Goal        `json:"goals"`
	Budgets      *[]domain.Budget      `json:"budgets"`
	Bills        *[]domain.Bill        `json:"bills"`
}

// Decode parses a persisted or imported document. The top level must be a
// JSON object; missing keys fall back to empty collections. Every failure
// wraps domain.ErrInvalidFormat.
func (c *Codec) Decode(data []byte) (*domain.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, domain.ErrNotAnObject
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var wire wireDocument
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", domain.ErrInvalidFormat)
	}

	doc := domain.NewDocument()
	if wire.Accounts != nil {
		doc.Accounts = *wire.Accounts
	}
	if wire.Transactions != nil {
		doc.Transactions = *wire.Transactions
	}
	if wire.Goals != nil {
		doc.Goals = *wire.Goals
	}
	if wire.Budgets != nil {
		doc.Budgets = *wire.Budgets
	}
	if wire.Bills != nil {
		doc.Bills = *wire.Bills
	}
	doc = doc.Clone()

	for i := range doc.Transactions {
		if doc.Transactions[i].Category == "" {
			doc.Transactions[i].Category = domain.DefaultCategory
		}
	}

	if err := c.validateRecords(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Codec) validateRecords(doc *domain.Document) error {
	check := func(kind string, i int, record interface{}) error {
		if err := c.validate.Struct(record); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return fmt.Errorf("%w: %s[%d].%s failed %q", domain.ErrInvalidFormat, kind, i, verrs[0].Field(), verrs[0].Tag())
			}
			return fmt.Errorf("%w: %s[%d]: %v", domain.ErrInvalidFormat, kind, i, err)
		}
		return nil
	}

	for i := range doc.Accounts {
		if err := check("accounts", i, doc.Accounts[i]); err != nil {
			return err
		}
	}
	for i := range doc.Transactions {
		if err := check("transactions", i, doc.Transactions[i]); err != nil {
			return err
		}
	}
	for i := range doc.Goals {
		if err := check("goals", i, doc.Goals[i]); err != nil {
			return err
		}
	}
	for i := range doc.Budgets {
		if err := check("budgets", i, doc.Budgets[i]); err != nil {
			return err
		}
	}
	for i := range doc.Bills {
		if err := check("bills", i, doc.Bills[i]); err != nil {
			return err
		}
	}
	return nil
}

// Encode serializes the document compactly for persistence
func (c *Codec) Encode(doc *domain.Document) ([]byte, error) {
	return json.Marshal(doc)
}

// EncodeIndent serializes the document for human-readable export
func (c *Codec) EncodeIndent(doc *domain.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
