package space

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ba6/gatekeeper/internal/application/space/usecases"
	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers/common"
	"github.com/ba6/gatekeeper/internal/interfaces/http/handlers/testutil"
	"github.com/ba6/gatekeeper/internal/shared/errors"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

const testUserID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type mockJoinSpaceUC struct {
	result *usecases.JoinSpaceResult
	err    error
	cmd    *usecases.JoinSpaceCommand
}

func (m *mockJoinSpaceUC) Execute(_ context.Context, cmd usecases.JoinSpaceCommand) (*usecases.JoinSpaceResult, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockSendMessageUC struct {
	result *usecases.SendMessageResult
	err    error
	cmd    *usecases.SendMessageCommand
}

func (m *mockSendMessageUC) Execute(_ context.Context, cmd usecases.SendMessageCommand) (*usecases.SendMessageResult, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockCreateThreadUC struct {
	result *usecases.CreateThreadResult
	err    error
	cmd    *usecases.CreateThreadCommand
}

func (m *mockCreateThreadUC) Execute(_ context.Context, cmd usecases.CreateThreadCommand) (*usecases.CreateThreadResult, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type testDeps struct {
	join   *mockJoinSpaceUC
	send   *mockSendMessageUC
	thread *mockCreateThreadUC
}

func newTestHandler() (*Handler, *testDeps) {
	deps := &testDeps{
		join:   &mockJoinSpaceUC{},
		send:   &mockSendMessageUC{},
		thread: &mockCreateThreadUC{},
	}
	return NewHandler(deps.join, deps.send, deps.thread, logger.NewNopLogger()), deps
}

func TestHandler_JoinSpace(t *testing.T) {
	t.Run("joined", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.join.result = &usecases.JoinSpaceResult{SpaceID: "space-1", UserID: testUserID, Role: "member", JoinedAt: time.Now()}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/join", nil)
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.JoinSpace(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, deps.join.cmd)
		assert.Equal(t, "space-1", deps.join.cmd.SpaceID)
		assert.Equal(t, testUserID, deps.join.cmd.UserID)
	})

	t.Run("already member", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.join.result = &usecases.JoinSpaceResult{SpaceID: "space-1", UserID: testUserID, AlreadyMember: true}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/join", nil)
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.JoinSpace(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("payment required", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.join.err = gate.NewGateAccessError(gate.ReasonPaymentRequired, "gate-1")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/join", nil)
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.JoinSpace(c)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		var body common.GateDeniedResponse
		require.NoError(t, testutil.ParseResponse(w, &body))
		assert.False(t, body.OK)
		assert.Equal(t, "payment_required", body.Reason)
	})

	t.Run("missing space id", func(t *testing.T) {
		h, deps := newTestHandler()

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces//join", nil)
		testutil.SetAuthContext(c, testUserID)

		h.JoinSpace(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, deps.join.cmd)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, deps := newTestHandler()

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/join", nil)
		testutil.SetURLParam(c, "id", "space-1")

		h.JoinSpace(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, deps.join.cmd)
	})
}

func TestHandler_SendMessage(t *testing.T) {
	t.Run("sent into thread", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.send.result = &usecases.SendMessageResult{MessageID: "msg-1", SpaceID: "space-1"}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/messages", map[string]string{
			"body":      "hello",
			"thread_id": "thread-1",
		})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.SendMessage(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, deps.send.cmd)
		assert.Equal(t, "hello", deps.send.cmd.Body)
		assert.Equal(t, "thread-1", deps.send.cmd.ThreadID)
	})

	t.Run("token gate not implemented", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.send.err = gate.NewGateAccessError(gate.ReasonTokenGateNotImplemented, "gate-9")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/messages", map[string]string{"body": "hello"})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.SendMessage(c)

		assert.Equal(t, http.StatusNotImplemented, w.Code)
		assert.Contains(t, w.Body.String(), "token_gate_not_implemented")
	})

	t.Run("not a member", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.send.err = errors.NewForbiddenError("join the space first")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/messages", map[string]string{"body": "hello"})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.SendMessage(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		h, deps := newTestHandler()

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/messages", map[string]string{})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.SendMessage(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, deps.send.cmd)
	})
}

func TestHandler_CreateThread(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.thread.result = &usecases.CreateThreadResult{ThreadID: "thread-1", SpaceID: "space-1", Title: "Intro"}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/threads", map[string]string{
			"title": "Intro",
			"body":  "first post",
		})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.CreateThread(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, deps.thread.cmd)
		assert.Equal(t, "Intro", deps.thread.cmd.Title)
		assert.Equal(t, "first post", deps.thread.cmd.Body)
	})

	t.Run("misconfigured pay gate", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.thread.err = gate.NewGateAccessError(gate.ReasonPayGateMissingLookup, "gate-2")

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/threads", map[string]string{"title": "Intro"})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.CreateThread(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "pay_gate_missing_lookup")
	})

	t.Run("lookup failure", func(t *testing.T) {
		h, deps := newTestHandler()
		deps.thread.err = fmt.Errorf("failed to check entitlement: %w", fmt.Errorf("timeout"))

		c, w := testutil.NewTestContext(http.MethodPost, "/api/spaces/space-1/threads", map[string]string{"title": "Intro"})
		testutil.SetAuthContext(c, testUserID)
		testutil.SetURLParam(c, "id", "space-1")

		h.CreateThread(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
