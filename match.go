package voucher

import "strings"

// MatchRule returns the first rule whose keyword appears in memo, in stored
// rule order. Rule order is user configuration and is never re-sorted, so a
// broader keyword placed earlier deliberately shadows narrower ones below
// it. Rules with empty keywords never match. The false return is the normal
// outcome for unrecognized memos, not an error.
func MatchRule(memo string, rules []Rule) (Rule, bool) {
	for _, r := range rules {
		if r.Keyword == "" {
			continue
		}
		if strings.Contains(memo, r.Keyword) {
			return r, true
		}
	}
	return Rule{}, false
}
