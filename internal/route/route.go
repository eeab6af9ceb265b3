// Package route holds the application route keys and the navigation
// capability consumed by the review core.
package route

// Key identifies an application route.
type Key string

const (
	KeyBills     Key = "Bills"
	KeyNewBill   Key = "NewBill"
	KeyDashboard Key = "Dashboard"
)

var paths = map[Key]string{
	KeyBills:     "#employee/bills",
	KeyNewBill:   "#employee/bill/new",
	KeyDashboard: "#admin/dashboard",
}

// Path returns the hash path for a route key, empty for unknown keys.
func Path(k Key) string {
	return paths[k]
}

// Navigator moves the UI to another route.
type Navigator interface {
	Navigate(k Key)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(k Key)

func (f NavigatorFunc) Navigate(k Key) {
	f(k)
}
