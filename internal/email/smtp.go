package email

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

const smtpTimeout = 20 * time.Second

// SMTPClient sends through an SMTP relay, authenticating with PLAIN when a
// password is set. STARTTLS is required unless the relay is the local host.
type SMTPClient struct {
	host     string
	port     int
	user     string
	password string
	deliver  func(ctx context.Context, m *mail.Msg) error
}

func NewSMTPClient(host string, port int, user, password string) *SMTPClient {
	c := &SMTPClient{
		host:     host,
		port:     port,
		user:     user,
		password: password,
	}
	c.deliver = c.dialAndSend
	return c
}

// Configured reports whether an account is set. The password may be empty
// for relays that accept unauthenticated mail from the host.
func (c *SMTPClient) Configured() bool {
	return c.user != "" && c.host != ""
}

func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return fmt.Errorf("smtp not configured: missing account")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := buildMessage(msg, time.Now())
	if err != nil {
		return err
	}
	if err := c.deliver(ctx, m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (c *SMTPClient) dialAndSend(ctx context.Context, m *mail.Msg) error {
	policy := mail.TLSMandatory
	if c.host == "localhost" || c.host == "127.0.0.1" {
		policy = mail.TLSOpportunistic
	}
	opts := []mail.Option{
		mail.WithPort(c.port),
		mail.WithTimeout(smtpTimeout),
		mail.WithTLSPortPolicy(policy),
	}
	if c.password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.user),
			mail.WithPassword(c.password),
		)
	}

	client, err := mail.NewClient(c.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, m)
}

// buildMessage renders msg as a UTF-8 plaintext mail dated now.
func buildMessage(msg Message, now time.Time) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
		return nil, fmt.Errorf("sender %q: %w", msg.FromAddress, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetDateWithValue(now)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	return m, nil
}
