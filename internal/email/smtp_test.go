package email

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/go-mail"
)

func renderMessage(t *testing.T, m *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("render message: %v", err)
	}
	return buf.String()
}

func TestSMTPSend(t *testing.T) {
	var got *mail.Msg
	c := NewSMTPClient("smtp.gmail.com", 587, "admin@condo.example", "app-password")
	c.deliver = func(_ context.Context, m *mail.Msg) error {
		got = m
		return nil
	}

	if err := c.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got == nil {
		t.Fatal("nothing delivered")
	}

	rcpts, err := got.GetRecipients()
	if err != nil {
		t.Fatalf("recipients: %v", err)
	}
	if len(rcpts) != 1 || rcpts[0] != "alice@example.com" {
		t.Errorf("recipients = %v", rcpts)
	}
	if subj := got.GetGenHeader(mail.HeaderSubject); len(subj) != 1 || subj[0] != "Comprobante Casa 12 - Folio #A-100" {
		t.Errorf("subject = %v", subj)
	}

	raw := renderMessage(t, got)
	if !strings.Contains(raw, "Estimado(a) Alice") {
		t.Errorf("body missing:\n%s", raw)
	}
	if !strings.Contains(raw, "text/plain") {
		t.Errorf("content type missing:\n%s", raw)
	}
	if !strings.Contains(strings.ToLower(raw), "from: =?utf-8?") {
		t.Errorf("non-ASCII sender name not encoded:\n%s", raw)
	}
	if !strings.Contains(raw, "<admin@condo.example>") {
		t.Errorf("sender address missing:\n%s", raw)
	}
}

func TestSMTPSendError(t *testing.T) {
	c := NewSMTPClient("smtp.gmail.com", 587, "admin@condo.example", "pw")
	c.deliver = func(context.Context, *mail.Msg) error {
		return errors.New("535 authentication failed")
	}

	err := c.Send(context.Background(), testMessage())
	if err == nil || !strings.Contains(err.Error(), "535") {
		t.Fatalf("err = %v, want relay error", err)
	}
}

func TestSMTPNotConfigured(t *testing.T) {
	c := NewSMTPClient("smtp.gmail.com", 587, "", "")
	if c.Configured() {
		t.Error("expected Configured() = false without an account")
	}
	if err := c.Send(context.Background(), testMessage()); err == nil {
		t.Error("expected error")
	}
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	msg := testMessage()
	msg.To = "not an address"

	if _, err := buildMessage(msg, time.Now()); err == nil {
		t.Error("expected error for a malformed recipient")
	}
}

func TestBuildMessageEncodesSubject(t *testing.T) {
	msg := testMessage()
	msg.Subject = "Comprobante Casa Ñandú"

	m, err := buildMessage(msg, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	raw := renderMessage(t, m)
	if !strings.Contains(strings.ToLower(raw), "subject: =?utf-8?q?") {
		t.Errorf("subject not Q-encoded:\n%s", raw)
	}
	if !strings.Contains(raw, "Date: Fri, 01 Mar 2024 10:00:00 +0000") {
		t.Errorf("date header missing:\n%s", raw)
	}
}
