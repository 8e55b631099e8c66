package voucher

import (
	"encoding/json"
	"fmt"
)

// Archive holds the three session tables: chart of accounts, customers and
// keyword rules. It is plain in-memory state scoped to one session; the only
// durability it offers is the explicit JSON backup bundle.
type Archive struct {
	Accounts  []Account
	Customers []Customer
	Rules     []Rule
}

// bundle is the backup wire format. Field names match the original backup
// files so old bundles keep restoring.
type bundle struct {
	COA   []Account  `json:"coa"`
	Cust  []Customer `json:"cust"`
	Rules []Rule     `json:"rules"`
}

// ReplaceAccounts swaps the chart-of-accounts table wholesale.
func (a *Archive) ReplaceAccounts(accounts []Account) {
	a.Accounts = accounts
}

// ReplaceCustomers swaps the customer table wholesale.
func (a *Archive) ReplaceCustomers(customers []Customer) {
	a.Customers = customers
}

// ReplaceRules swaps the rule table wholesale, preserving order.
func (a *Archive) ReplaceRules(rules []Rule) {
	a.Rules = rules
}

// AccountRefs returns the picklist of free-text account references offered
// when editing rules.
func (a *Archive) AccountRefs() []string {
	refs := make([]string, 0, len(a.Accounts))
	for _, acc := range a.Accounts {
		refs = append(refs, acc.Ref())
	}
	return refs
}

// MarshalBundle serializes the archive as a backup bundle. Export followed
// by UnmarshalBundle reproduces the tables exactly, order included.
func (a *Archive) MarshalBundle() ([]byte, error) {
	b := bundle{COA: a.Accounts, Cust: a.Customers, Rules: a.Rules}
	if b.COA == nil {
		b.COA = []Account{}
	}
	if b.Cust == nil {
		b.Cust = []Customer{}
	}
	if b.Rules == nil {
		b.Rules = []Rule{}
	}
	return json.Marshal(b)
}

// UnmarshalBundle fully replaces the archive from a backup bundle. On error
// the archive is left untouched.
func (a *Archive) UnmarshalBundle(data []byte) error {
	var b bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("restore backup bundle: %w", err)
	}
	a.Accounts = b.COA
	a.Customers = b.Cust
	a.Rules = b.Rules
	return nil
}
