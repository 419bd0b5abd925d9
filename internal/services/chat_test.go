package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parley-org/parley-backend/internal/logger"
	"github.com/parley-org/parley-backend/internal/repos/mocks"
	"github.com/parley-org/parley-backend/internal/services"
	"github.com/parley-org/parley-backend/internal/types"
)

func TestChatService_SendMessage_PersistsUserThenBot(t *testing.T) {
	mockRepo := new(mocks.ChatMessageRepo)
	svc := services.NewChatService(logger.NewNop(), mockRepo, services.NewCannedResponder(logger.NewNop()))
	userID := uuid.New()

	var order []string
	var botContent string

	mockRepo.On("CreateMessages", mock.Anything, mock.Anything, mock.MatchedBy(func(msgs []*types.ChatMessage) bool {
		return len(msgs) == 1 && msgs[0].IsFromUser
	})).Run(func(args mock.Arguments) {
		msg := args.Get(2).([]*types.ChatMessage)[0]
		order = append(order, "user")
		assert.Equal(t, userID, msg.UserID)
		assert.Equal(t, "hello there", msg.Content, "content must be trimmed before persisting")
	}).Return(nil, nil).Once()

	mockRepo.On("CreateMessages", mock.Anything, mock.Anything, mock.MatchedBy(func(msgs []*types.ChatMessage) bool {
		return len(msgs) == 1 && !msgs[0].IsFromUser
	})).Run(func(args mock.Arguments) {
		msg := args.Get(2).([]*types.ChatMessage)[0]
		order = append(order, "bot")
		botContent = msg.Content
		assert.Equal(t, userID, msg.UserID)
	}).Return(nil, nil).Once()

	reply, err := svc.SendMessage(context.Background(), userID, "  hello there  ")
	require.NoError(t, err)

	assert.Equal(t, []string{"user", "bot"}, order, "user message must be written before the bot message")
	assert.Equal(t, reply, botContent, "the persisted bot message must match the returned reply")
	assert.Contains(t, services.PlaceholderReplies, reply)
	mockRepo.AssertExpectations(t)
}

func TestChatService_SendMessage_EmptyAfterTrim(t *testing.T) {
	mockRepo := new(mocks.ChatMessageRepo)
	svc := services.NewChatService(logger.NewNop(), mockRepo, services.NewCannedResponder(logger.NewNop()))

	_, err := svc.SendMessage(context.Background(), uuid.New(), "   \t  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrEmptyMessage))
	mockRepo.AssertNotCalled(t, "CreateMessages", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_SendMessage_UserWriteFails(t *testing.T) {
	mockRepo := new(mocks.ChatMessageRepo)
	svc := services.NewChatService(logger.NewNop(), mockRepo, services.NewCannedResponder(logger.NewNop()))

	mockRepo.On("CreateMessages", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("store offline")).Once()

	_, err := svc.SendMessage(context.Background(), uuid.New(), "hello")
	require.Error(t, err)
	// The bot write must never start if the user write did not land.
	mockRepo.AssertNumberOfCalls(t, "CreateMessages", 1)
}

func TestChatService_GetHistory(t *testing.T) {
	mockRepo := new(mocks.ChatMessageRepo)
	svc := services.NewChatService(logger.NewNop(), mockRepo, services.NewCannedResponder(logger.NewNop()))
	userID := uuid.New()

	want := []*types.ChatMessage{
		{ID: uuid.New(), UserID: userID, Content: "hi", IsFromUser: true},
		{ID: uuid.New(), UserID: userID, Content: "Thanks for sharing that with me.", IsFromUser: false},
	}
	mockRepo.On("GetByUserID", mock.Anything, mock.Anything, userID).
		Return(want, nil).Once()

	got, err := svc.GetHistory(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestChatService_GetHistory_RepoError(t *testing.T) {
	mockRepo := new(mocks.ChatMessageRepo)
	svc := services.NewChatService(logger.NewNop(), mockRepo, services.NewCannedResponder(logger.NewNop()))

	mockRepo.On("GetByUserID", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("store offline")).Once()

	_, err := svc.GetHistory(context.Background(), uuid.New())
	require.Error(t, err)
}
