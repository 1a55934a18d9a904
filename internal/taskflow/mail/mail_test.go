package mail

import (
	"bufio"
	"context"
	"net"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts a single message and hands back its envelope and data.
type fakeSMTP struct {
	ln   net.Listener
	from string
	rcpt string
	data chan string
}

func newFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	f := &fakeSMTP{ln: ln, data: make(chan string, 1)}
	go f.serve()
	return f
}

func (f *fakeSMTP) port() int { return f.ln.Addr().(*net.TCPAddr).Port }

func (f *fakeSMTP) serve() {
	conn, err := f.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 fake ESMTP")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250 fake")
		case "MAIL":
			f.from = line
			_ = tp.PrintfLine("250 ok")
		case "RCPT":
			f.rcpt = line
			_ = tp.PrintfLine("250 ok")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			lines, _ := tp.ReadDotLines()
			f.data <- strings.Join(lines, "\n")
			_ = tp.PrintfLine("250 queued")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 unsupported")
		}
	}
}

func TestSMTPMailerSend(t *testing.T) {
	srv := newFakeSMTP(t)
	m, err := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: srv.port(), From: "noreply@taskflow.test"})
	require.NoError(t, err)

	err = m.Send(context.Background(), Message{To: "ann@example.com", Subject: "Hello", Body: "line one\nline two"})
	require.NoError(t, err)

	select {
	case data := <-srv.data:
		require.Contains(t, data, "Subject: Hello")
		require.Contains(t, data, "To: ann@example.com")
		require.Contains(t, data, "line one\nline two")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
	require.Contains(t, srv.from, "noreply@taskflow.test")
	require.Contains(t, srv.rcpt, "ann@example.com")
}

func TestSMTPMailerDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	m, err := NewSMTPMailer(SMTPConfig{Host: "127.0.0.1", Port: port, From: "a@b.c", Timeout: time.Second})
	require.NoError(t, err)
	require.Error(t, m.Send(context.Background(), Message{To: "x@y.z"}))
}

func TestComposeHeaders(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "mail.test", From: "noreply@taskflow.test"})
	require.NoError(t, err)

	raw := string(m.compose(Message{To: "a@b.c", Subject: "Hi\r\nBcc: evil@x.y", Body: "one\ntwo"}, time.Unix(0, 0)))
	r := textproto.NewReader(bufio.NewReader(strings.NewReader(raw)))
	hdr, err := r.ReadMIMEHeader()
	require.NoError(t, err)
	require.Equal(t, "Hi  Bcc: evil@x.y", hdr.Get("Subject"))
	require.Empty(t, hdr.Get("Bcc"))
	require.Equal(t, "text/plain; charset=UTF-8", hdr.Get("Content-Type"))
	require.True(t, strings.HasSuffix(raw, "one\r\ntwo"))
}

func TestNewSMTPMailerValidation(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{From: "a@b.c"})
	require.Error(t, err)
	_, err = NewSMTPMailer(SMTPConfig{Host: "h"})
	require.Error(t, err)

	m, err := NewSMTPMailer(SMTPConfig{Host: "h", From: "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, 587, m.cfg.Port)
}

func TestInvitationMessage(t *testing.T) {
	msg := InvitationMessage("ivy@example.com", "Ann", "Acme", "https://app.test/invite/abc", time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC))
	require.Equal(t, "ivy@example.com", msg.To)
	require.Contains(t, msg.Subject, "Acme")
	require.Contains(t, msg.Body, "Ann has invited you to join Acme")
	require.Contains(t, msg.Body, "https://app.test/invite/abc")
	require.Contains(t, msg.Body, "8 January 2025")
}

func TestLogMailerNeverFails(t *testing.T) {
	require.NoError(t, LogMailer{}.Send(context.Background(), Message{To: "a@b.c"}))
}
