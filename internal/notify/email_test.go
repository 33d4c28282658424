package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)
	assert.Nil(t, sender)
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
	}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Lead Manager", sender.fromName)
}

func TestNewSendGridSender_CustomFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
		FromName:  "Sales Desk",
	}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Sales Desk", sender.fromName)
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}
	err := sender.Send(context.Background(), EmailMessage{
		To:      "recipient@example.com",
		Subject: "Test",
		Body:    "Test body",
	})
	assert.Error(t, err)
}

func TestStubEmailSender_RecordsMessages(t *testing.T) {
	sender := NewStubEmailSender(nil)
	err := sender.Send(context.Background(), EmailMessage{To: "a@example.com", Subject: "one"})
	require.NoError(t, err)
	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "b@example.com", Subject: "two"}))

	sent := sender.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", sent[0].Subject)
	assert.Equal(t, "b@example.com", sent[1].To)
}

type mockSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.input = in
	if m.err != nil {
		return nil, m.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewSESSender_NilClient(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{FromEmail: "from@example.com"}, nil))
}

func TestSESSender_Send(t *testing.T) {
	client := &mockSES{}
	sender := newSESSender(client, SESConfig{FromEmail: "from@example.com"}, nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "to@example.com",
		Subject: "Hello",
		Body:    "plain",
		HTML:    "<p>rich</p>",
	})
	require.NoError(t, err)
	require.NotNil(t, client.input)
	assert.Equal(t, "Lead Manager <from@example.com>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"to@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(client.input.Content.Simple.Subject.Data))
	assert.Equal(t, "plain", aws.ToString(client.input.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>rich</p>", aws.ToString(client.input.Content.Simple.Body.Html.Data))
}

func TestSESSender_SendTextOnly(t *testing.T) {
	client := &mockSES{}
	sender := newSESSender(client, SESConfig{FromEmail: "from@example.com", FromName: "Desk"}, nil)

	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "to@example.com", Subject: "s", Body: "b"}))
	assert.Nil(t, client.input.Content.Simple.Body.Html)
	assert.Equal(t, "Desk <from@example.com>", aws.ToString(client.input.FromEmailAddress))
}

func TestSESSender_SendError(t *testing.T) {
	client := &mockSES{err: errors.New("throttled")}
	sender := newSESSender(client, SESConfig{FromEmail: "from@example.com"}, nil)

	err := sender.Send(context.Background(), EmailMessage{To: "to@example.com", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
