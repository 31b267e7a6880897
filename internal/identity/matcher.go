// Package identity resolves whether a CNPJ belongs to our own company or to
// a supplier. Documents reach the correlation engine with this already
// decided, so the matcher runs in the loader, never inside the engine.
package identity

import (
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizeCNPJ strips formatting down to the bare 14 digits. Inputs that do
// not hold exactly 14 digits come back empty.
func NormalizeCNPJ(cnpj string) string {
	digits := nonDigitRe.ReplaceAllString(cnpj, "")
	if len(digits) != 14 {
		return ""
	}
	return digits
}

// FormatCNPJ renders a bare 14-digit CNPJ in the usual
// XX.XXX.XXX/XXXX-XX shape. Anything else passes through unchanged.
func FormatCNPJ(cnpj string) string {
	digits := NormalizeCNPJ(cnpj)
	if digits == "" {
		return cnpj
	}
	var b strings.Builder
	b.WriteString(digits[0:2])
	b.WriteString(".")
	b.WriteString(digits[2:5])
	b.WriteString(".")
	b.WriteString(digits[5:8])
	b.WriteString("/")
	b.WriteString(digits[8:12])
	b.WriteString("-")
	b.WriteString(digits[12:14])
	return b.String()
}

// Matcher answers "is this CNPJ ours". It is injected explicitly into
// whatever constructs document records - never ambient global state.
type Matcher interface {
	IsOwn(cnpj string) bool
}

// CachedMatcher resolves against a configured own-CNPJ set, memoizing
// normalized lookups in a TTL cache.
type CachedMatcher struct {
	own   map[string]bool
	cache *gocache.Cache
}

// NewCachedMatcher builds a matcher from the configured own-company CNPJs.
func NewCachedMatcher(ownCNPJs []string, ttl time.Duration) *CachedMatcher {
	own := make(map[string]bool)
	for _, c := range ownCNPJs {
		if norm := NormalizeCNPJ(c); norm != "" {
			own[norm] = true
		}
	}
	return &CachedMatcher{
		own:   own,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// IsOwn reports whether the CNPJ belongs to our own company.
func (m *CachedMatcher) IsOwn(cnpj string) bool {
	if cnpj == "" {
		return false
	}
	if cached, found := m.cache.Get(cnpj); found {
		return cached.(bool)
	}
	result := m.own[NormalizeCNPJ(cnpj)]
	m.cache.Set(cnpj, result, gocache.DefaultExpiration)
	return result
}
