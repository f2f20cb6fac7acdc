package model

var categories = [...]string{
	"Food",
	"Rent",
	"Entertainment",
	"Transport",
	"Utilities",
	"Shopping",
	"Healthcare",
	"Miscellaneous",
}

// Categories returns the fixed list of expense categories in display order.
// The returned slice is a fresh copy on every call.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories[:])
	return out
}
