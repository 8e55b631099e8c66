package voucher

import "strings"

// UnmatchedCustomer is the sentinel customer code emitted when no customer
// shares a transaction's counterparty name. It flows into the output as a
// literal value so unresolved rows can be fixed up by hand afterwards.
const UnmatchedCustomer = "未匹配"

// Resolver maps counterparty names to customer codes by exact, trimmed,
// case-sensitive equality.
type Resolver struct {
	// Sentinel is returned for names with no customer. Defaults to
	// UnmatchedCustomer.
	Sentinel string

	codes map[string]string
	dups  []string
}

// NewResolver indexes customers by trimmed name. When several customers
// share a name the first in table order wins and the name is recorded as a
// duplicate so callers can warn about the ambiguity once per batch.
func NewResolver(customers []Customer) *Resolver {
	r := &Resolver{
		Sentinel: UnmatchedCustomer,
		codes:    make(map[string]string, len(customers)),
	}
	for _, c := range customers {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if _, taken := r.codes[name]; taken {
			r.dups = append(r.dups, name)
			continue
		}
		r.codes[name] = c.Code
	}
	return r
}

// Resolve returns the customer code for name, or the sentinel.
func (r *Resolver) Resolve(name string) string {
	if code, ok := r.codes[strings.TrimSpace(name)]; ok {
		return code
	}
	return r.Sentinel
}

// Duplicates lists names held by more than one customer, in table order.
func (r *Resolver) Duplicates() []string {
	return r.dups
}
