package relay

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/model"
)

const implicitTLSPort = 465

// ErrAuthUnsupported is reported when credentials are configured but the
// server does not offer AUTH.
var ErrAuthUnsupported = errors.New("server does not support AUTH")

// SendFunc delivers a fully composed message.
type SendFunc func(ctx context.Context, from string, to []string, msg []byte) error

// Dialer abstracts net.Dialer to simplify testing.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// SMTPOption configures an SMTPRelay.
type SMTPOption func(*SMTPRelay)

// WithDialer swaps the network dialer used to reach the SMTP server.
func WithDialer(d Dialer) SMTPOption {
	return func(r *SMTPRelay) {
		if d != nil {
			r.dialer = d
		}
	}
}

// WithTLSConfig overrides the TLS configuration used for STARTTLS and port 465.
func WithTLSConfig(cfg *tls.Config) SMTPOption {
	return func(r *SMTPRelay) {
		r.tlsConfig = cfg
	}
}

// WithClock replaces the clock used for the Date header.
func WithClock(now func() time.Time) SMTPOption {
	return func(r *SMTPRelay) {
		if now != nil {
			r.now = now
		}
	}
}

// WithSendFunc replaces SMTP delivery entirely.
func WithSendFunc(fn SendFunc) SMTPOption {
	return func(r *SMTPRelay) {
		if fn != nil {
			r.send = fn
		}
	}
}

// SMTPRelay emails the configured account about each contact message. The
// account is both sender and recipient; Reply-To is the visitor's address.
type SMTPRelay struct {
	host      string
	port      int
	account   string
	auth      smtp.Auth
	tlsConfig *tls.Config
	dialer    Dialer
	now       func() time.Time
	send      SendFunc
}

// NewSMTPRelay builds a relay for cfg. Credentials are not checked here; use New
// to fall back to Disabled when they are missing.
func NewSMTPRelay(cfg config.MailConfig, opts ...SMTPOption) *SMTPRelay {
	r := &SMTPRelay{
		host:    cfg.Host,
		port:    cfg.Port,
		account: cfg.User,
		auth:    smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host),
		tlsConfig: &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		},
		dialer: &net.Dialer{Timeout: 30 * time.Second},
		now:    time.Now,
	}
	r.send = r.deliver
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Notify makes exactly one delivery attempt.
func (r *SMTPRelay) Notify(ctx context.Context, msg *model.ContactMessage) Outcome {
	if msg == nil {
		return Outcome{Status: StatusFailed, Err: errors.New("smtp relay: message is required")}
	}
	body := r.compose(msg)
	if err := r.send(ctx, r.account, []string{r.account}, body); err != nil {
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("smtp relay: %w", err)}
	}
	return Outcome{Status: StatusSucceeded}
}

// Subject returns the notification subject for a sender name.
func Subject(name string) string {
	return "Portfolio Contact: " + name
}

func (r *SMTPRelay) compose(msg *model.ContactMessage) []byte {
	replyTo := (&mail.Address{Address: msg.Email}).String()
	headers := [][2]string{
		{"From", r.account},
		{"To", r.account},
		{"Reply-To", replyTo},
		{"Subject", mime.QEncoding.Encode("utf-8", sanitizeHeaderValue(Subject(msg.Name)))},
		{"Date", r.now().UTC().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	}

	var buf bytes.Buffer
	for _, h := range headers {
		buf.WriteString(h[0])
		buf.WriteString(": ")
		buf.WriteString(sanitizeHeaderValue(h[1]))
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	body := fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s\n", msg.Name, msg.Email, msg.Message)
	buf.WriteString(normalizeBody(body))
	return buf.Bytes()
}

func (r *SMTPRelay) deliver(ctx context.Context, from string, to []string, message []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(r.host, strconv.Itoa(r.port))
	conn, err := r.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	if r.port == implicitTLSPort && r.tlsConfig != nil {
		conn = tls.Client(conn, r.tlsConfig.Clone())
	}

	client, err := smtp.NewClient(conn, r.host)
	if err != nil {
		return fmt.Errorf("new client: %w", err)
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("hello: %w", err)
	}

	if r.port != implicitTLSPort && r.tlsConfig != nil {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(r.tlsConfig.Clone()); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if r.auth != nil {
		if ok, _ := client.Extension("AUTH"); !ok {
			return ErrAuthUnsupported
		}
		if err := client.Auth(r.auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		_ = w.Close()
		return fmt.Errorf("data write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("data close: %w", err)
	}

	if err := client.Quit(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}

func normalizeBody(body string) string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.ReplaceAll(normalized, "\n", "\r\n")
}

func sanitizeHeaderValue(value string) string {
	clean := strings.ReplaceAll(value, "\r", " ")
	clean = strings.ReplaceAll(clean, "\n", " ")
	return strings.TrimSpace(clean)
}
