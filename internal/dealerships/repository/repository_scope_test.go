package repository

import (
	"strings"
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

func TestScopeConditionAssigneeOnly(t *testing.T) {
	userID := uuid.New()
	cond, args := scopeCondition(&Scope{UserID: userID}, nil)

	if cond != "assigned_user_id = $1" {
		t.Errorf("condition = %q, want assignee-only predicate", cond)
	}
	if len(args) != 1 || args[0] != userID {
		t.Errorf("args = %v, want [%s]", args, userID)
	}
}

func TestUpdateStatusQueryStampsLiveActivatedAtOnce(t *testing.T) {
	query := strings.ToLower(updateStatusQuery)

	requiredFragments := []string{
		"is_live = case when $3 then true else is_live end",
		"live_activated_at = case when $3 then coalesce(live_activated_at, now()) else live_activated_at end",
	}

	for _, fragment := range requiredFragments {
		if !strings.Contains(query, fragment) {
			t.Fatalf("expected stamp-once query fragment %q to be present", fragment)
		}
	}
}

func TestScopeConditionAssigneeOrTerritory(t *testing.T) {
	userID := uuid.New()
	territoryID := uuid.New()
	cond, args := scopeCondition(&Scope{UserID: userID, TerritoryID: &territoryID}, nil)

	if cond != "(assigned_user_id = $1 OR territory_id = $2)" {
		t.Errorf("condition = %q, want assignee-or-territory predicate", cond)
	}
	if len(args) != 2 || args[0] != userID || args[1] != territoryID {
		t.Errorf("args = %v, want [%s %s]", args, userID, territoryID)
	}
}
