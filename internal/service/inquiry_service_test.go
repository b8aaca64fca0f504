package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "brokerweb/internal/errors"
	"brokerweb/internal/model"
	"brokerweb/internal/upstream"
	"brokerweb/internal/workflow"
)

// MockInquiryBackend is a mock implementation of InquiryBackend.
type MockInquiryBackend struct {
	mock.Mock
}

func (m *MockInquiryBackend) CreateInquiry(ctx context.Context, in upstream.InquiryInput) (*model.Inquiry, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryBackend) ListInquiries(ctx context.Context, token string, filter upstream.InquiryFilter) ([]model.Inquiry, error) {
	args := m.Called(ctx, token, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Inquiry), args.Error(1)
}

func (m *MockInquiryBackend) GetInquiry(ctx context.Context, token, id string) (*model.Inquiry, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inquiry), args.Error(1)
}

func (m *MockInquiryBackend) UpdateStatus(ctx context.Context, token, id, status string) error {
	args := m.Called(ctx, token, id, status)
	return args.Error(0)
}

func (m *MockInquiryBackend) AppendLog(ctx context.Context, token, id, agentID, message, newStatus string) error {
	args := m.Called(ctx, token, id, agentID, message, newStatus)
	return args.Error(0)
}

func (m *MockInquiryBackend) AssignInquiry(ctx context.Context, token, id, agentID string) error {
	args := m.Called(ctx, token, id, agentID)
	return args.Error(0)
}

func (m *MockInquiryBackend) UnassignInquiry(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func agentSession() *model.Session {
	return &model.Session{
		Token: "tok-1",
		User:  model.User{ID: "u1", Name: "Meera", Email: "meera@example.com", Role: "agent", LinkedID: "A1"},
	}
}

func logsFixture() []model.ConversationLog {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return []model.ConversationLog{
		{Message: "first call", AgentName: "Meera", Timestamp: base},
		{Message: "second call", AgentName: "Meera", Timestamp: base.Add(time.Hour)},
		{Message: "third call", AgentName: "Meera", Timestamp: base.Add(2 * time.Hour)},
		{Message: "fourth call", AgentName: "Meera", Timestamp: base.Add(3 * time.Hour)},
	}
}

func TestInquiryService_SubmitPublic(t *testing.T) {
	tests := []struct {
		name        string
		input       upstream.InquiryInput
		expectedErr error
		forwarded   bool
	}{
		{
			name:      "valid inquiry",
			input:     upstream.InquiryInput{Name: "Ravi", Phone: "9876543210", InquiryType: "buy"},
			forwarded: true,
		},
		{
			name:      "whitespace trimmed before validation",
			input:     upstream.InquiryInput{Name: "  Ravi  ", Phone: " 9876543210 "},
			forwarded: true,
		},
		{
			name:        "missing name",
			input:       upstream.InquiryInput{Phone: "9876543210"},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "short phone",
			input:       upstream.InquiryInput{Name: "Ravi", Phone: "98765"},
			expectedErr: apperrors.ErrValidation,
		},
		{
			name:        "phone with bad leading digit",
			input:       upstream.InquiryInput{Name: "Ravi", Phone: "1876543210"},
			expectedErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBackend := new(MockInquiryBackend)
			if tt.forwarded {
				mockBackend.On("CreateInquiry", mock.Anything, mock.MatchedBy(func(in upstream.InquiryInput) bool {
					return in.Name == "Ravi" && in.Phone == "9876543210" && in.InquiryType != ""
				})).Return(&model.Inquiry{ID: "i1", Status: "new"}, nil)
			}

			svc := NewInquiryService(mockBackend)
			inq, err := svc.SubmitPublic(context.Background(), tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, inq)
				mockBackend.AssertNotCalled(t, "CreateInquiry")
			} else {
				require.NoError(t, err)
				assert.Equal(t, "i1", inq.ID)
			}
			mockBackend.AssertExpectations(t)
		})
	}
}

func TestInquiryService_ListPreviews(t *testing.T) {
	mockBackend := new(MockInquiryBackend)
	mockBackend.On("ListInquiries", mock.Anything, "tok-1", upstream.InquiryFilter{}).
		Return([]model.Inquiry{
			{ID: "i1", Status: "talked", ConversationLogs: logsFixture()},
			{ID: "i2", Status: "new"},
		}, nil)

	svc := NewInquiryService(mockBackend)
	items, err := svc.List(context.Background(), agentSession(), upstream.InquiryFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Only the last three entries, oldest of the three first.
	require.Len(t, items[0].Preview, 3)
	assert.Equal(t, "second call", items[0].Preview[0].Message)
	assert.Equal(t, "fourth call", items[0].Preview[2].Message)
	assert.Empty(t, items[1].Preview)
}

func TestInquiryService_DetailReversesLogs(t *testing.T) {
	mockBackend := new(MockInquiryBackend)
	mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
		Return(&model.Inquiry{ID: "i1", Status: "talked", ConversationLogs: logsFixture()}, nil)

	svc := NewInquiryService(mockBackend)
	inq, err := svc.Detail(context.Background(), agentSession(), "i1")
	require.NoError(t, err)

	require.Len(t, inq.ConversationLogs, 4)
	assert.Equal(t, "fourth call", inq.ConversationLogs[0].Message)
	assert.Equal(t, "first call", inq.ConversationLogs[3].Message)
}

func TestInquiryService_ComputeNextState(t *testing.T) {
	svc := NewInquiryService(new(MockInquiryBackend))

	next, ok := svc.ComputeNextState(workflow.StatusNew)
	assert.True(t, ok)
	assert.Equal(t, workflow.StatusAssigned, next)

	_, ok = svc.ComputeNextState(workflow.StatusClosed)
	assert.False(t, ok)
}

func TestInquiryService_ApplyTransition(t *testing.T) {
	t.Run("empty agent rejected before any request", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		svc := NewInquiryService(mockBackend)

		_, err := svc.ApplyTransition(context.Background(), agentSession(), "i1", "  ", workflow.StatusTalked, "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockBackend.AssertNotCalled(t, "GetInquiry")
		mockBackend.AssertNotCalled(t, "AppendLog")
	})

	t.Run("default note names the new state", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "visit_scheduled"}, nil).Once()
		mockBackend.On("AppendLog", mock.Anything, "tok-1", "i1", "A1", "Status updated to visit confirmed", "visit_confirmed").
			Return(nil)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "visit_confirmed", ConversationLogs: logsFixture()}, nil).Once()

		svc := NewInquiryService(mockBackend)
		updated, err := svc.ApplyTransition(context.Background(), agentSession(), "i1", "A1", workflow.StatusVisitConfirmed, "")
		require.NoError(t, err)
		assert.Equal(t, "visit_confirmed", updated.Status)
		// The re-read copy comes back newest-first, like Detail.
		assert.Equal(t, "fourth call", updated.ConversationLogs[0].Message)
		mockBackend.AssertExpectations(t)
	})

	t.Run("custom note forwarded verbatim", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "assigned"}, nil).Once()
		mockBackend.On("AppendLog", mock.Anything, "tok-1", "i1", "A1", "spoke at length", "talked").
			Return(nil)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "talked"}, nil).Once()

		svc := NewInquiryService(mockBackend)
		_, err := svc.ApplyTransition(context.Background(), agentSession(), "i1", "A1", workflow.StatusTalked, "spoke at length")
		require.NoError(t, err)
		mockBackend.AssertExpectations(t)
	})

	t.Run("closed inquiry cannot move", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "closed"}, nil).Once()

		svc := NewInquiryService(mockBackend)
		_, err := svc.ApplyTransition(context.Background(), agentSession(), "i1", "A1", workflow.StatusNew, "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockBackend.AssertNotCalled(t, "AppendLog")
	})

	t.Run("skipping ahead is rejected", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "new"}, nil).Once()

		svc := NewInquiryService(mockBackend)
		_, err := svc.ApplyTransition(context.Background(), agentSession(), "i1", "A1", workflow.StatusClosed, "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockBackend.AssertNotCalled(t, "AppendLog")
	})
}

func TestInquiryService_AppendLog(t *testing.T) {
	t.Run("empty message rejected before any request", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		svc := NewInquiryService(mockBackend)

		_, err := svc.AppendLog(context.Background(), agentSession(), "i1", "A1", "   ")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockBackend.AssertNotCalled(t, "AppendLog")
	})

	t.Run("message appended without status change", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		mockBackend.On("AppendLog", mock.Anything, "tok-1", "i1", "A1", "left a voicemail", "").
			Return(nil)
		mockBackend.On("GetInquiry", mock.Anything, "tok-1", "i1").
			Return(&model.Inquiry{ID: "i1", Status: "talked"}, nil)

		svc := NewInquiryService(mockBackend)
		_, err := svc.AppendLog(context.Background(), agentSession(), "i1", "A1", "  left a voicemail  ")
		require.NoError(t, err)
		mockBackend.AssertExpectations(t)
	})

	t.Run("missing session", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		svc := NewInquiryService(mockBackend)

		_, err := svc.AppendLog(context.Background(), nil, "i1", "A1", "hello")
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
		mockBackend.AssertNotCalled(t, "AppendLog")
	})
}

func TestInquiryService_TriageStatus(t *testing.T) {
	tests := []struct {
		name        string
		from, to    workflow.Status
		expectedErr error
	}{
		{name: "new to contacted", from: workflow.StatusNew, to: workflow.StatusContacted},
		{name: "contacted back to new", from: workflow.StatusContacted, to: workflow.StatusNew},
		{name: "closed reopens to new", from: workflow.StatusClosed, to: workflow.StatusNew},
		{name: "new cannot jump to closed", from: workflow.StatusNew, to: workflow.StatusClosed, expectedErr: apperrors.ErrValidation},
		{name: "closed cannot jump to contacted", from: workflow.StatusClosed, to: workflow.StatusContacted, expectedErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBackend := new(MockInquiryBackend)
			if tt.expectedErr == nil {
				mockBackend.On("UpdateStatus", mock.Anything, "tok-1", "i1", string(tt.to)).Return(nil)
			}

			svc := NewInquiryService(mockBackend)
			err := svc.TriageStatus(context.Background(), agentSession(), "i1", tt.from, tt.to)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				mockBackend.AssertNotCalled(t, "UpdateStatus")
			} else {
				assert.NoError(t, err)
			}
			mockBackend.AssertExpectations(t)
		})
	}
}

func TestInquiryService_Assign(t *testing.T) {
	t.Run("forwards assignment", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		mockBackend.On("AssignInquiry", mock.Anything, "tok-1", "i1", "A2").Return(nil)

		svc := NewInquiryService(mockBackend)
		assert.NoError(t, svc.Assign(context.Background(), agentSession(), "i1", "A2"))
		mockBackend.AssertExpectations(t)
	})

	t.Run("empty agent rejected", func(t *testing.T) {
		mockBackend := new(MockInquiryBackend)
		svc := NewInquiryService(mockBackend)
		err := svc.Assign(context.Background(), agentSession(), "i1", "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockBackend.AssertNotCalled(t, "AssignInquiry")
	})
}
