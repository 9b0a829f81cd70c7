package core

// categories is the advisory expense taxonomy, in presentation order.
// Advisory means Add accepts categories outside this list; the list only
// feeds the categories tool.
var categories = [...]string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Business",
	"Other",
}

// Categories returns the advisory category labels in fixed order.
func Categories() []string {
	return append([]string(nil), categories[:]...)
}
