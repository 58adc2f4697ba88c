//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "restaurant-api"
	ConsumerName = "pos-frontend"

	StateMenuSeeded      = "the starter menu is loaded"
	StateMenuItemMissing = "no menu item with id 404"
	StateCartReady       = "cart pact-cart holds two burgers"
)

const (
	BurgerID      int64 = 2
	MissingItemID int64 = 404
	CartID              = "pact-cart"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the POS consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleMenuItem is the Burger from the starter menu.
func ExampleMenuItem() map[string]any {
	return map[string]any{
		"id":          BurgerID,
		"name":        "Burger",
		"description": "Juicy beef burger with lettuce, tomato and cheese",
		"price":       "10.50",
		"category":    "Main Course",
		"available":   true,
	}
}

// ExampleCheckout is the order details sent when checking out the pact cart.
func ExampleCheckout() map[string]any {
	return map[string]any{
		"customerName": "Alice",
		"tableNumber":  "5",
		"orderType":    "Dine In",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
