package domain_test

import (
	"errors"
	"testing"

	"github.com/gocrud/shop/core/domain"
)

func TestCartAddItemMergesQuantity(t *testing.T) {
	cart := domain.NewCart("u1")

	if err := cart.AddItem("p1", 500, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := cart.AddItem("p1", 500, 3); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected merged item, got %d items", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	// 合并不改变原有单价
	if cart.Items[0].UnitPrice != 500 {
		t.Errorf("expected unit price 500, got %d", cart.Items[0].UnitPrice)
	}
}

func TestCartAddItemRejectsNonPositiveQuantity(t *testing.T) {
	cart := domain.NewCart("u1")

	for _, qty := range []int{0, -1} {
		if err := cart.AddItem("p1", 500, qty); !errors.Is(err, domain.ErrQuantityNotPositive) {
			t.Errorf("quantity %d: expected ErrQuantityNotPositive, got %v", qty, err)
		}
	}
	if !cart.IsEmpty() {
		t.Error("rejected item must not be added")
	}
}

func TestCartRemoveItem(t *testing.T) {
	cart := domain.NewCart("u1")
	_ = cart.AddItem("p1", 500, 1)
	_ = cart.AddItem("p2", 300, 2)

	if !cart.RemoveItem("p1") {
		t.Error("RemoveItem must report true for existing product")
	}
	if cart.RemoveItem("p1") {
		t.Error("RemoveItem must report false for absent product")
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p2" {
		t.Errorf("unexpected items after removal: %+v", cart.Items)
	}
}

func TestCartTotalAmount(t *testing.T) {
	cart := domain.NewCart("u1")
	_ = cart.AddItem("p1", 500, 2)
	_ = cart.AddItem("p2", 300, 3)

	if got := cart.TotalAmount(); got != 1900 {
		t.Errorf("expected total 1900, got %d", got)
	}
}
