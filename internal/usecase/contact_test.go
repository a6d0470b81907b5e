package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	m.Run()
}

// Mock mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendContactEmail(ctx context.Context, data mailer.ContactEmailData) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestSendContactMessageValidation(t *testing.T) {
	mockMailer := new(MockMailer)
	uc := usecase.NewContactUsecase(mockMailer)
	ctx := context.Background()

	t.Run("Should reject missing fields before anything else", func(t *testing.T) {
		cases := []*domain.ContactRequest{
			{Name: "", Email: "a@b.com", Message: "Hi"},
			{Name: "Ann", Email: "", Message: "Hi"},
			{Name: "Ann", Email: "a@b.com", Message: ""},
			{Name: "   ", Email: "a@b.com", Message: "Hi"}, // whitespace only
		}
		for _, req := range cases {
			err := uc.SendContactMessage(ctx, req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
			assert.Contains(t, err.Error(), "required")
		}
		mockMailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed email addresses", func(t *testing.T) {
		for _, email := range []string{"not-an-email", "a@b", "a b@c.com", "@x.com"} {
			err := uc.SendContactMessage(ctx, &domain.ContactRequest{Name: "Ann", Email: email, Message: "Hi"})
			require.Error(t, err, "email %q should be rejected", email)
			assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
			assert.Equal(t, "Invalid email address", err.Error())
		}
		mockMailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
	})
}

func TestSendContactMessageNotConfigured(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("IsConfigured").Return(false)
	uc := usecase.NewContactUsecase(mockMailer)

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		Name: "Ann", Email: "ann@x.com", Message: "Hi",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, appErrCode(t, err))
	assert.Equal(t, "Email service is not configured", err.Error())
	mockMailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
}

func TestSendContactMessageDispatchFailure(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("IsConfigured").Return(true)
	mockMailer.On("SendContactEmail", mock.Anything, mock.Anything).Return("", errors.New("provider said 422: domain not verified"))
	uc := usecase.NewContactUsecase(mockMailer)

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		Name: "Ann", Email: "ann@x.com", Message: "Hi",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrCode(t, err))
	// Provider internals must not leak into the user-facing message
	assert.Equal(t, "Failed to send email", err.Error())
	assert.NotContains(t, err.Error(), "provider said")
}

func TestSendContactMessageSuccess(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("IsConfigured").Return(true)
	mockMailer.On("SendContactEmail", mock.Anything, mock.MatchedBy(func(data mailer.ContactEmailData) bool {
		return data.SenderName == "Ann" &&
			data.SenderEmail == "ann@x.com" &&
			data.Subject == "" &&
			data.Message == "Hi"
	})).Return("msg_123", nil)
	uc := usecase.NewContactUsecase(mockMailer)

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		Name: "  Ann  ", Email: " ann@x.com ", Message: "Hi",
	})
	require.NoError(t, err)
	mockMailer.AssertExpectations(t)
}

func TestSendContactMessageNoDeduplication(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("IsConfigured").Return(true)
	mockMailer.On("SendContactEmail", mock.Anything, mock.Anything).Return("msg", nil)
	uc := usecase.NewContactUsecase(mockMailer)

	req := &domain.ContactRequest{Name: "Ann", Email: "ann@x.com", Message: "Hi"}
	require.NoError(t, uc.SendContactMessage(context.Background(), req))
	require.NoError(t, uc.SendContactMessage(context.Background(), req))

	// Identical payloads produce two independent dispatch attempts
	mockMailer.AssertNumberOfCalls(t, "SendContactEmail", 2)
}
