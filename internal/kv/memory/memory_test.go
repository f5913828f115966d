package memory

import (
	"context"
	"testing"
)

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "totalIncome"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "totalIncome", "12.34"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "totalIncome", "56.78"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, "totalIncome")
	if err != nil || !ok || v != "56.78" {
		t.Fatalf("get after overwrite = %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Delete(ctx, "totalIncome", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "totalIncome"); ok {
		t.Fatalf("key survived delete")
	}
	if s.Len() != 0 {
		t.Fatalf("store not empty after delete, len=%d", s.Len())
	}
}
