package domain

import "slices"

// Document is the whole persisted ledger. Collections are never nil so the
// serialized form always carries every key.
type Document struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Goals        []Goal        `json:"goals"`
	Budgets      []Budget      `json:"budgets"`
	Bills        []Bill        `json:"bills"`
}

// NewDocument returns the empty default document
func NewDocument() *Document {
	return &Document{
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Goals:        []Goal{},
		Budgets:      []Budget{},
		Bills:        []Bill{},
	}
}

// Clone returns a deep copy. Pointer fields on transactions are copied so the
// clone can be mutated freely.
func (d *Document) Clone() *Document {
	out := &Document{
		Accounts:     slices.Clone(d.Accounts),
		Transactions: make([]Transaction, len(d.Transactions)),
		Goals:        slices.Clone(d.Goals),
		Budgets:      slices.Clone(d.Budgets),
		Bills:        slices.Clone(d.Bills),
	}
	for i, t := range d.Transactions {
		out.Transactions[i] = t.Copy()
	}
	out.normalize()
	return out
}

func (d *Document) normalize() {
	if d.Accounts == nil {
		d.Accounts = []Account{}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.Goals == nil {
		d.Goals = []Goal{}
	}
	if d.Budgets == nil {
		d.Budgets = []Budget{}
	}
	if d.Bills == nil {
		d.Bills = []Bill{}
	}
}

// FindAccount returns the index of the account with id, or -1
func (d *Document) FindAccount(id string) int {
	return slices.IndexFunc(d.Accounts, func(a Account) bool { return a.ID == id })
}

// FindTransaction returns the index of the transaction with id, or -1
func (d *Document) FindTransaction(id string) int {
	return slices.IndexFunc(d.Transactions, func(t Transaction) bool { return t.ID == id })
}

// FindGoal returns the index of the goal with id, or -1
func (d *Document) FindGoal(id string) int {
	return slices.IndexFunc(d.Goals, func(g Goal) bool { return g.ID == id })
}

// FindBudget returns the index of the budget with id, or -1
func (d *Document) FindBudget(id string) int {
	return slices.IndexFunc(d.Budgets, func(b Budget) bool { return b.ID == id })
}

// FindBill returns the index of the bill with id, or -1
func (d *Document) FindBill(id string) int {
	return slices.IndexFunc(d.Bills, func(b Bill) bool { return b.ID == id })
}
