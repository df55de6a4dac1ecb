package main

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{
		"mod":       true,
		"admin":     true,
		"moderator": false,
		"":          false,
		"Admin":     false,
	} {
		if got := validRole(role); got != want {
			t.Errorf("validRole(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestGrantRole(t *testing.T) {
	filter, update := grantRole("sk8r@example.com", "mod")

	if filter["email"] != "sk8r@example.com" {
		t.Errorf("filter targets %v, want the email", filter["email"])
	}
	add, ok := update["$addToSet"].(bson.M)
	if !ok {
		t.Fatalf("update missing $addToSet: %v", update)
	}
	if add["roles"] != "mod" {
		t.Errorf("grant adds %v to roles, want mod", add["roles"])
	}
	if _, ok := update["$set"].(bson.M); !ok {
		t.Errorf("grant should refresh updatedAt via $set")
	}
}
