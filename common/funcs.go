package common

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FuncMap is shared by every HTML view.
func FuncMap(domain string) template.FuncMap {
	return template.FuncMap{
		"now":      time.Now,
		"domain":   func() string { return domain },
		"money":    Money,
		"date":     func(t time.Time) string { return t.Format("January 2, 2006") },
		"markdown": Markdown,
		"lower":    strings.ToLower,
		"truncate": Truncate,
		"add":      func(a, b int) int { return a + b },
		"join":     strings.Join,
	}
}

// Money formats an amount in dollars. It accepts decimal values, pointers
// to them, and plain numbers.
func Money(v any) string {
	var d decimal.Decimal
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case *decimal.Decimal:
		if x == nil {
			return "$0.00"
		}
		d = *x
	case int:
		d = decimal.NewFromInt(int64(x))
	case float64:
		d = decimal.NewFromFloat(x)
	default:
		return fmt.Sprint(v)
	}
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Truncate cuts s to n runes and appends "..." when it had to cut.
func Truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
