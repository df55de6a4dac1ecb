package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeRolesSingular(t *testing.T) {
	roles := NormalizeRoles(map[string]interface{}{"role": "mod"})
	if !reflect.DeepEqual(roles, []string{"mod"}) {
		t.Errorf("roles = %v, want [mod]", roles)
	}
}

func TestNormalizeRolesArray(t *testing.T) {
	roles := NormalizeRoles(map[string]interface{}{
		"roles": []interface{}{"mod", "admin"},
	})
	if !reflect.DeepEqual(roles, []string{"mod", "admin"}) {
		t.Errorf("roles = %v, want [mod admin]", roles)
	}
}

func TestNormalizeRolesMergesAndDedupes(t *testing.T) {
	roles := NormalizeRoles(map[string]interface{}{
		"role":  "mod",
		"roles": []interface{}{"mod", "admin"},
	})
	if !reflect.DeepEqual(roles, []string{"mod", "admin"}) {
		t.Errorf("roles = %v, want [mod admin]", roles)
	}
}

func TestNormalizeRolesEmpty(t *testing.T) {
	if roles := NormalizeRoles(map[string]interface{}{}); len(roles) != 0 {
		t.Errorf("roles = %v, want empty", roles)
	}
	// Non-string junk in the claim is dropped, not propagated.
	if roles := NormalizeRoles(map[string]interface{}{"role": 42}); len(roles) != 0 {
		t.Errorf("roles = %v, want empty", roles)
	}
}

func TestHasAnyRole(t *testing.T) {
	required := []string{"mod", "admin"}
	if !HasAnyRole([]string{"admin"}, required) {
		t.Error("admin should satisfy the requirement")
	}
	if HasAnyRole([]string{"user"}, required) {
		t.Error("user should not satisfy the requirement")
	}
	if HasAnyRole(nil, required) {
		t.Error("empty role set should not satisfy the requirement")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, "u1", []string{"mod"}, 5)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims["sub"] != "u1" {
		t.Errorf("sub = %v, want u1", claims["sub"])
	}
	if roles := NormalizeRoles(claims); !reflect.DeepEqual(roles, []string{"mod"}) {
		t.Errorf("roles = %v, want [mod]", roles)
	}

	if _, err := ParseToken("wrong-secret", token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}
