package repository

import (
	"testing"

	"github.com/google/uuid"
)

func TestScopeConditionAdminSeesEverything(t *testing.T) {
	cond, args := scopeCondition(nil, nil)

	if cond != "1=1" {
		t.Errorf("admin condition = %q, want no-op predicate", cond)
	}
	if len(args) != 0 {
		t.Errorf("admin condition bound %d args, want 0", len(args))
	}
}

func TestScopeConditionOwnerOnly(t *testing.T) {
	userID := uuid.New()
	cond, args := scopeCondition(&Scope{UserID: userID}, nil)

	if cond != "owner_id = $1" {
		t.Errorf("condition = %q, want owner-only predicate", cond)
	}
	if len(args) != 1 || args[0] != userID {
		t.Errorf("args = %v, want [%s]", args, userID)
	}
}

func TestScopeConditionOwnerOrTerritory(t *testing.T) {
	userID := uuid.New()
	territoryID := uuid.New()
	cond, args := scopeCondition(&Scope{UserID: userID, TerritoryID: &territoryID}, nil)

	if cond != "(owner_id = $1 OR territory_id = $2)" {
		t.Errorf("condition = %q, want owner-or-territory predicate", cond)
	}
	if len(args) != 2 || args[0] != userID || args[1] != territoryID {
		t.Errorf("args = %v, want [%s %s]", args, userID, territoryID)
	}
}

func TestScopeConditionExtendsExistingArgs(t *testing.T) {
	userID := uuid.New()
	territoryID := uuid.New()
	cond, args := scopeCondition(&Scope{UserID: userID, TerritoryID: &territoryID}, []interface{}{"existing"})

	if cond != "(owner_id = $2 OR territory_id = $3)" {
		t.Errorf("condition = %q, placeholders must continue after existing args", cond)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want 3 values", args)
	}
}
