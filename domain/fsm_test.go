package domain

import (
	"chat-courier/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertTransition_Only_Forward_Path(t *testing.T) {
	states := []State{StateCreated, StateAccepted, StatePersisted, StateFailed, State("BOGUS")}
	legal := map[[2]State]bool{
		{StateCreated, StateAccepted}:   true,
		{StateAccepted, StatePersisted}: true,
	}

	for _, from := range states {
		for _, to := range states {
			err := AssertTransition(from, to)
			if legal[[2]State{from, to}] {
				require.NoError(t, err, "%s -> %s", from, to)
				require.True(t, IsValidTransition(from, to))
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			require.False(t, IsValidTransition(from, to))

			de, ok := errors.AsDomainError(err)
			require.True(t, ok)
			require.Equal(t, errors.KindInvalidTransition, de.Kind)
			require.Equal(t, string(from), de.From)
			require.Equal(t, string(to), de.To)
			require.ElementsMatch(t, AllowedTransitions(), de.Allowed)
		}
	}
}

func TestIsValidState(t *testing.T) {
	req := require.New(t)

	req.True(IsValidState(StateCreated))
	req.True(IsValidState(StateAccepted))
	req.True(IsValidState(StatePersisted))
	req.False(IsValidState(StateFailed))
	req.False(IsValidState(""))
	req.Equal(StateCreated, InitialState())
	req.True(IsTerminal(StatePersisted))
	req.False(IsTerminal(StateAccepted))
}

func TestDirectConversationID_Is_Symmetric(t *testing.T) {
	req := require.New(t)

	req.Equal(DirectConversationID("bob", "alice"), DirectConversationID("alice", "bob"))
	req.Equal("dm:alice:bob", DirectConversationID("bob", "alice"))
}
