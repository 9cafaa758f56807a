package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, subject, text, html string) error {
	return m.Called(ctx, to, subject, text, html).Error(0)
}

func TestDeliver_Template(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, "test@example.com",
		mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Once()

	body := []byte(`{"to":"test@example.com","template":"password_changed","data":{"Name":"홍길*","LoginID":"testuser1"}}`)
	require.NoError(t, Deliver(context.Background(), sender, body, time.Second))

	subject := sender.Calls[0].Arguments.String(2)
	assert.Contains(t, subject, "비밀번호가 변경되었습니다")
	sender.AssertExpectations(t)
}

func TestDeliver_Undeliverable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad json", body: `{"to":`},
		{name: "no recipient", body: `{"subject":"hi","text":"hello"}`},
		{name: "empty job", body: `{"to":"test@example.com"}`},
		{name: "unknown template", body: `{"to":"test@example.com","template":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{}
			err := Deliver(context.Background(), sender, []byte(tt.body), time.Second)
			assert.ErrorIs(t, err, ErrUndeliverable)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDeliver_SendFailureIsRetryable(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("mailgun: 503")).Once()

	err := Deliver(context.Background(), sender, []byte(`{"to":"a@example.com","subject":"s","text":"t"}`), time.Second)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUndeliverable)
}
