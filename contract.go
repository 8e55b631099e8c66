package voucher

import (
	"fmt"
	"regexp"
	"strings"
)

// ExtractConfig controls contract-number extraction. The noise vocabulary
// and token length bounds were tuned against real statement memos and vary
// between businesses, so they are configuration rather than constants.
type ExtractConfig struct {
	// NoiseWords are stripped from the memo before token search.
	NoiseWords []string
	// MinLen and MaxLen bound candidate token length, in characters.
	MinLen int
	MaxLen int
}

// DefaultExtractConfig returns the extraction settings used when no config
// file overrides them.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		NoiseWords: []string{
			"销售", "发货", "货款", "付款", "收款",
			"sale", "shipment", "payment", "goods",
			"台", "件", "箱",
		},
		MinLen: 5,
		MaxLen: 20,
	}
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Extractor pulls a contract identifier out of free-text memos. It strips
// the noise vocabulary, then searches the remainder for runs of letters,
// digits and hyphens within the configured length bounds, skipping anything
// shaped like a calendar date.
type Extractor struct {
	noise  []string
	minLen int
	token  *regexp.Regexp
}

// NewExtractor builds an Extractor from cfg. Zero or inverted length bounds
// fall back to the defaults.
func NewExtractor(cfg ExtractConfig) *Extractor {
	def := DefaultExtractConfig()
	if cfg.MinLen <= 0 {
		cfg.MinLen = def.MinLen
	}
	if cfg.MaxLen < cfg.MinLen {
		cfg.MaxLen = def.MaxLen
	}
	if cfg.NoiseWords == nil {
		cfg.NoiseWords = def.NoiseWords
	}
	return &Extractor{
		noise:  cfg.NoiseWords,
		minLen: cfg.MinLen,
		token:  regexp.MustCompile(fmt.Sprintf(`[A-Za-z0-9-]{%d,%d}`, cfg.MinLen, cfg.MaxLen)),
	}
}

// Extract returns the first contract-shaped token found in memo, or the
// empty string. It never fails; an unusable memo yields "".
func (e *Extractor) Extract(memo string) string {
	memo = strings.TrimSpace(memo)
	if memo == "" {
		return ""
	}

	for _, w := range e.noise {
		if w == "" {
			continue
		}
		memo = strings.ReplaceAll(memo, w, "")
	}

	for _, tok := range e.token.FindAllString(memo, -1) {
		if datePattern.MatchString(tok) {
			continue
		}
		// Hyphens are separators in memos like "销售-ABC1234"; a token
		// is its hyphen-trimmed core.
		tok = strings.Trim(tok, "-")
		if len(tok) < e.minLen {
			continue
		}
		return tok
	}
	return ""
}
