package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/quanlykho/kho_backend/utils"
)

func TestNewOrderIdFormat(t *testing.T) {
	id := utils.NewOrderId(time.Now())
	if !strings.HasPrefix(id, "DH") {
		t.Fatalf("id = %q, want DH prefix", id)
	}
	if len(id) != 8 {
		t.Fatalf("id = %q, want DH plus six digits", id)
	}
}

// Regression: back-to-back orders land in the same millisecond; their codes
// must still differ.
func TestNewOrderIdUniqueWithinMillisecond(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := utils.NewOrderId(now)
		if seen[id] {
			t.Fatalf("duplicate order id %q", id)
		}
		seen[id] = true
	}
}

func TestJwtRoundTrip(t *testing.T) {
	token, err := utils.JwtGenerate("admin", "admin")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	parsed, err := utils.JwtValidate(token)
	if err != nil || !parsed.Valid {
		t.Fatalf("JwtValidate: valid=%v err=%v", parsed != nil && parsed.Valid, err)
	}
	claims, ok := parsed.Claims.(*utils.JwtCustomClaim)
	if !ok || claims.Username != "admin" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", parsed.Claims)
	}
}

func TestJwtValidateRejectsTampering(t *testing.T) {
	token, err := utils.JwtGenerate("admin", "admin")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if parsed, err := utils.JwtValidate(tampered); err == nil && parsed.Valid {
		t.Fatal("tampered token validated")
	}
}
