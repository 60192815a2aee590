// Package classifier assigns support categories to free-text queries
// using keyword matching. It is deliberately rule-based: the category
// only drives routing, so a cheap deterministic scan beats an extra
// model call on every request.
package classifier

import "strings"

// Category is the routing label assigned to a query.
type Category string

const (
	CategoryProduct Category = "product"
	CategoryReturns Category = "returns"
	CategoryGeneral Category = "general"
)

// productKeywords cover product names and purchase/spec vocabulary.
// Checked before returnsKeywords: a query matching both sets is a
// product query.
var productKeywords = []string{
	"smartwatch", "smart watch", "watch",
	"earbuds", "earphones", "headphones",
	"power bank", "powerbank", "battery pack",
	"price", "cost", "how much",
	"features", "specifications", "specs",
	"available", "in stock", "buy", "purchase",
	"model", "version", "variant",
	"color", "colour", "size",
	"battery life", "charging",
	"warranty period",
	"water resistant", "waterproof",
	"compatible", "compatibility",
	"review", "rating", "feedback",
}

var returnsKeywords = []string{
	"return", "refund",
	"exchange", "replace", "replacement",
	"cancel", "cancellation",
	"warranty", "guarantee",
	"defective", "damaged", "broken", "faulty",
	"not working", "issue", "problem",
	"complaint", "dispute",
	"money back",
	"send back", "ship back",
}

// Classify maps a raw query to a category. It is a pure function: the
// query is lower-cased and scanned for product keywords first, then
// returns keywords. Anything else, including empty input, is general.
func Classify(query string) Category {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return CategoryGeneral
	}
	if matchAny(q, productKeywords) {
		return CategoryProduct
	}
	if matchAny(q, returnsKeywords) {
		return CategoryReturns
	}
	return CategoryGeneral
}

func matchAny(query string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(query, kw) {
			return true
		}
	}
	return false
}
