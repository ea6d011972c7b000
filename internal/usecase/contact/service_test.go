package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	err      error
	name     string
	from     string
	message  string
	sendings int
}

func (f *fakeMailer) SendContactMessage(_ context.Context, name, fromEmail, message string) error {
	f.sendings++
	f.name = name
	f.from = fromEmail
	f.message = message
	return f.err
}

func (f *fakeMailer) SendPasswordReset(context.Context, string, string) error {
	return nil
}

func TestSendContactMessage(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(mail)

	err := svc.Send(context.Background(), &ContactRequest{
		Name:    "  Ada Lovelace ",
		Email:   " Ada@Example.com ",
		Message: "The library entrance ramp is blocked.",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, mail.sendings)
	assert.Equal(t, "Ada Lovelace", mail.name)
	assert.Equal(t, "ada@example.com", mail.from)
	assert.Equal(t, "The library entrance ramp is blocked.", mail.message)
}

func TestSendValidation(t *testing.T) {
	mail := &fakeMailer{}
	svc := NewService(mail)

	err := svc.Send(context.Background(), &ContactRequest{Name: "Ada"})
	assert.Error(t, err)
	assert.Equal(t, 0, mail.sendings)

	err = svc.Send(context.Background(), &ContactRequest{
		Name:    "Ada",
		Email:   "not-an-email",
		Message: "hello",
	})
	assert.Error(t, err)
	assert.Equal(t, 0, mail.sendings)
}

func TestSendMailerFailure(t *testing.T) {
	mail := &fakeMailer{err: errors.New("smtp unreachable")}
	svc := NewService(mail)

	err := svc.Send(context.Background(), &ContactRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "hello",
	})
	assert.Error(t, err)
}
