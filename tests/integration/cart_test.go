//go:build integration

package integration

import (
	"math"
	"net/http"
	"testing"
)

func TestAddToCart(t *testing.T) {
	registerUser(t, "it-cart-add")
	roundID := findItemID(t, "Round Widget")

	c := addToCart(t, "it-cart-add", roundID, 2)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items))
	}
	if math.Abs(c.Total-5.98) > 1e-9 {
		t.Errorf("total: got %v, want 5.98", c.Total)
	}
	for _, line := range c.Items {
		if line.ItemID != roundID {
			t.Errorf("line item id: got %d, want %d", line.ItemID, roundID)
		}
		if line.Name != "Round Widget" {
			t.Errorf("line name: got %q, want %q", line.Name, "Round Widget")
		}
	}
}

func TestAddToCart_AccumulatesAcrossItems(t *testing.T) {
	registerUser(t, "it-cart-mixed")
	roundID := findItemID(t, "Round Widget")
	polishID := findItemID(t, "Widget Polish")

	addToCart(t, "it-cart-mixed", roundID, 1)
	c := addToCart(t, "it-cart-mixed", polishID, 1)

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items))
	}
	if math.Abs(c.Total-13.99) > 1e-9 {
		t.Errorf("total: got %v, want 13.99", c.Total)
	}
}

func TestRemoveFromCart(t *testing.T) {
	registerUser(t, "it-cart-remove")
	hexID := findItemID(t, "Hex Widget")

	addToCart(t, "it-cart-remove", hexID, 3)

	resp := doPost(t, "/api/cart/removeFromCart", modifyCartRequest{
		Username: "it-cart-remove",
		ItemID:   hexID,
		Quantity: 2,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	c := decodeJSON[cartResponse](t, resp)
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line left, got %d", len(c.Items))
	}
	if math.Abs(c.Total-3.49) > 1e-9 {
		t.Errorf("total: got %v, want 3.49", c.Total)
	}
}

func TestRemoveFromCart_MoreThanPresent(t *testing.T) {
	registerUser(t, "it-cart-drain")
	squareID := findItemID(t, "Square Widget")

	addToCart(t, "it-cart-drain", squareID, 1)

	resp := doPost(t, "/api/cart/removeFromCart", modifyCartRequest{
		Username: "it-cart-drain",
		ItemID:   squareID,
		Quantity: 10,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	c := decodeJSON[cartResponse](t, resp)
	if len(c.Items) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(c.Items))
	}
	if c.Total != 0 {
		t.Errorf("total: got %v, want 0", c.Total)
	}
}

func TestModifyCart_Errors(t *testing.T) {
	registerUser(t, "it-cart-errors")
	roundID := findItemID(t, "Round Widget")

	tests := []struct {
		name string
		req  modifyCartRequest
		want int
	}{
		{"unknown user", modifyCartRequest{Username: "it-nobody", ItemID: roundID, Quantity: 1}, http.StatusNotFound},
		{"unknown item", modifyCartRequest{Username: "it-cart-errors", ItemID: 999999, Quantity: 1}, http.StatusNotFound},
		{"missing username", modifyCartRequest{ItemID: roundID, Quantity: 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doPost(t, "/api/cart/addToCart", tt.req)
			resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}
