// Package email delivers payment receipts through SMTP or Postmark.
package email

import (
	"context"
	"net/mail"
)

// Message is a plaintext email.
type Message struct {
	FromName    string
	FromAddress string
	To          string
	Subject     string
	TextBody    string
}

// From renders the sender as a header value, encoding a non-ASCII name.
func (m Message) From() string {
	a := mail.Address{Name: m.FromName, Address: m.FromAddress}
	return a.String()
}

// Sender delivers one message. Configured reports whether the transport has
// the credentials it needs; an unconfigured sender is never called.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Configured() bool
}
