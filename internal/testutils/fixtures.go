package testutils

import (
	"github.com/KirkDiggler/rpg-inventory/internal/entities/inventory"
	"github.com/KirkDiggler/rpg-inventory/internal/testutils/builders"
)

const (
	// TestConversationID is the conversation most tests operate on
	TestConversationID = "conv-test-001"

	// TestCharName and TestUserName are the display names of the two roles
	TestCharName = "Seraphina"
	TestUserName = "Thorin"
)

// TestNames returns the display names used by fixtures
func TestNames() inventory.Names {
	return inventory.Names{Char: TestCharName, User: TestUserName}
}

// CreateTestState returns a state with a small adventuring kit: the character carries
// two cloaks and a sword (equipped) and has hp and mood stats, the user has some coin
func CreateTestState() *inventory.State {
	return builders.NewStateBuilder().
		WithItem(inventory.RoleChar, "cloak", "Cloak", 2).
		WithItem(inventory.RoleChar, "sword", "Sword", 1).
		WithEquipped(inventory.RoleChar, "sword").
		WithItem(inventory.RoleUser, "goldCoin", "Gold Coin", 12).
		WithStat(inventory.RoleChar, "hp", inventory.Number(10)).
		WithStat(inventory.RoleChar, "mood", inventory.Text("calm")).
		Build()
}
