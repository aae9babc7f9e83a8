package runtime

import (
	"chat-courier/contract"
	"chat-courier/mocks"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistry_Register_One_User_Multiple_Connections(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	first := contract.Session{UserID: userID, ConnectionID: "a", Transport: mocks.NewMockTransport(ctrl)}
	second := contract.Session{UserID: userID, ConnectionID: "b", Transport: mocks.NewMockTransport(ctrl)}

	// Given no user is connected
	req.Zero(registry.Online())
	req.Nil(registry.ConnectionsFor(userID))

	// When the same user opens two connections
	registry.Register(first)
	registry.Register(second)

	// Then both are reachable
	req.Equal(1, registry.Online())
	req.Equal([]contract.Session{first, second}, registry.ConnectionsFor(userID))
}

func TestRegistry_Unregister_Keeps_Other_Connections(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := NewRegistry()
	first := contract.Session{UserID: "bob", ConnectionID: "a", Transport: mocks.NewMockTransport(ctrl)}
	second := contract.Session{UserID: "bob", ConnectionID: "b", Transport: mocks.NewMockTransport(ctrl)}
	registry.Register(first)
	registry.Register(second)

	// When one connection goes away
	left := registry.Unregister("bob", "a")

	// Then the other one is still registered
	req.Equal(1, left)
	req.Equal([]contract.Session{second}, registry.ConnectionsFor("bob"))

	// When the last one goes away
	left = registry.Unregister("bob", "b")

	// Then the user is offline
	req.Zero(left)
	req.Zero(registry.Online())
	req.Nil(registry.ConnectionsFor("bob"))

	// And unregistering an unknown user is harmless
	req.Zero(registry.Unregister("ghost", "x"))
}
