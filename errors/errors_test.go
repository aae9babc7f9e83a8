package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainError_Unwraps_To_Sentinel(t *testing.T) {
	req := require.New(t)

	err := fmt.Errorf("create message: %w", NewDuplicate("msg-1"))

	req.True(IsDuplicate(err))
	req.ErrorIs(err, ErrDuplicateMessage)
	kind, ok := KindOf(err)
	req.True(ok)
	req.Equal(KindDuplicate, kind)

	de, ok := AsDomainError(err)
	req.True(ok)
	req.Equal("msg-1", de.MessageID)
}

func TestDomainError_Message_Lists_Violations(t *testing.T) {
	req := require.New(t)

	err := NewSchemaError([]Violation{
		{Field: "clientMsgId", Reason: "required"},
		{Field: "protocolVersion", Reason: "unsupported", Value: 3},
	})

	req.Contains(err.Error(), "clientMsgId:required")
	req.Contains(err.Error(), "protocolVersion:unsupported")
}

func TestClassification(t *testing.T) {
	req := require.New(t)

	req.True(IsFatal(ErrMissingSequenceStore))
	req.True(stderrors.Is(ErrMissingSequenceStore, ErrConfiguration))
	req.False(IsFatal(NewInvalidMessage("senderId", "empty", "")))

	req.True(IsTransient(NewRateLimited("message bucket exhausted")))
	req.True(IsTransient(ErrBackpressure))
	req.False(IsTransient(NewInvalidTransition("CREATED", "PERSISTED", nil)))
	req.False(IsTransient(nil))
}

func TestSendFailures_Are_Transient(t *testing.T) {
	req := require.New(t)
	cause := stderrors.New("broken pipe")

	backpressure := NewBackpressure("c-1")
	sendException := NewSendException(cause)

	kind, _ := KindOf(backpressure)
	req.Equal(KindBackpressure, kind)
	req.True(IsTransient(backpressure))
	req.ErrorIs(backpressure, ErrBackpressure)

	kind, _ = KindOf(sendException)
	req.Equal(KindSendException, kind)
	req.True(IsTransient(sendException))
	req.ErrorIs(sendException, ErrSendException)
	req.ErrorIs(sendException, cause)
}

func TestToFrameCode(t *testing.T) {
	req := require.New(t)

	req.Equal("INVALID_TRANSITION", ToFrameCode(NewInvalidTransition("PERSISTED", "CREATED", nil)))
	req.Equal("INVALID_MESSAGE", ToFrameCode(NewInvalidMessage("payload", "too_large", nil)))
	req.Equal("INVALID_STATE", ToFrameCode(NewInvalidState("LOST")))
	req.Equal("RATE_LIMITED", ToFrameCode(NewRateLimited("typing")))
	req.Equal("UNKNOWN_TYPE", ToFrameCode(ErrUnknownFrameType))
	req.Equal("INTERNAL", ToFrameCode(fmt.Errorf("disk on fire")))
	req.Empty(ToFrameCode(nil))
}
