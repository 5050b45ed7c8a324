package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subtrack/internal/lib/smtp"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockWriter struct {
	mock.Mock
	written []byte
}

func (m *MockWriter) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return len(p), args.Error(0)
}

func (m *MockWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func renewalBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.RenewalInfo{
		Email:           "alice@example.com",
		Username:        "alice",
		Name:            "Netflix",
		Cost:            15.99,
		NextBillingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func newTestService(transport *MockTransport) *SenderService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSenderService(log, transport)
}

func TestSendUpcomingRenewal(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockWriter)

	transport.On("GetSMTPUser").Return("mailer@example.com")
	transport.On("Connect").Return(client, nil)
	client.On("Mail", "mailer@example.com").Return(nil)
	client.On("Rcpt", "alice@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	writer.On("Write", mock.Anything).Return(nil)
	writer.On("Close").Return(nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	svc := newTestService(transport)
	err := svc.SendUpcomingRenewal(renewalBody(t))
	require.NoError(t, err)

	content := string(writer.written)
	assert.Contains(t, content, "To: alice@example.com")
	assert.Contains(t, content, "Netflix")
	assert.Contains(t, content, "15.99")
	assert.Contains(t, content, "15.09.2026")
	client.AssertExpectations(t)
}

func TestSendUpcomingRenewal_BadJSON(t *testing.T) {
	svc := newTestService(new(MockTransport))

	err := svc.SendUpcomingRenewal([]byte("{not json"))
	assert.Error(t, err)
}

func TestSendUpcomingRenewal_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("mailer@example.com")
	transport.On("Connect").Return(nil, errors.New("dial failed"))

	svc := newTestService(transport)
	err := svc.SendUpcomingRenewal(renewalBody(t))
	assert.Error(t, err)
}
