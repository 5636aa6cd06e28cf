// Package pagination coerces page/limit query parameters.
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a validated pagination window.
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Parse never fails: missing, non-numeric or non-positive values fall back to
// the defaults, and limits above MaxLimit are clamped.
func Parse(page, limit string) Page {
	p := Page{Page: positive(page, DefaultPage), Limit: positive(limit, DefaultLimit)}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip returns the number of items before this page.
func (p Page) Skip() int {
	return (p.Page - 1) * p.Limit
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
