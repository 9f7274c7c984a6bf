// Package verify probes mail infrastructure to check whether a server will
// accept a candidate address. Results are advisory: many providers reject
// all probes to prevent enumeration, so "not confirmed" never means
// "invalid".
package verify

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Prober checks whether a mail server accepts an address.
type Prober interface {
	// Probe returns true only when the recipient was explicitly accepted.
	// Connection failures, rejections, and greylisting all return false
	// with a nil error.
	Probe(ctx context.Context, email string) (bool, error)
}

// session is the SMTP handshake surface used by the probe, satisfied by
// *smtp.Client.
type session interface {
	Hello(localName string) error
	Mail(from string) error
	Rcpt(to string) error
	Quit() error
}

// SMTP implements Prober against real mail exchangers.
type SMTP struct {
	heloDomain string
	fromAddr   string

	// injectable for testing
	lookupMX func(ctx context.Context, domain string) ([]*net.MX, error)
	dial     func(ctx context.Context, host string) (session, error)
}

// Option configures the prober.
type Option func(*SMTP)

// WithHelo sets the domain announced in the HELO greeting.
func WithHelo(domain string) Option {
	return func(s *SMTP) { s.heloDomain = domain }
}

// WithFrom sets the envelope sender used in the handshake.
func WithFrom(addr string) Option {
	return func(s *SMTP) { s.fromAddr = addr }
}

// WithLookupMX overrides MX resolution.
func WithLookupMX(fn func(ctx context.Context, domain string) ([]*net.MX, error)) Option {
	return func(s *SMTP) { s.lookupMX = fn }
}

// WithDial overrides the SMTP connection factory.
func WithDial(fn func(ctx context.Context, host string) (session, error)) Option {
	return func(s *SMTP) { s.dial = fn }
}

// NewSMTP creates an SMTP prober.
func NewSMTP(opts ...Option) *SMTP {
	s := &SMTP{
		heloDomain: "verify.local",
		fromAddr:   "verify@verify.local",
		lookupMX:   defaultLookupMX,
		dial:       defaultDial,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Probe resolves the address's domain MX, connects to the primary
// exchanger, and runs HELO/MAIL FROM/RCPT TO. Only a "recipient accepted"
// reply yields true.
func (s *SMTP) Probe(ctx context.Context, email string) (bool, error) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false, eris.Errorf("verify: malformed address %q", email)
	}
	domain := email[at+1:]

	log := zap.L().With(zap.String("email", email))

	mxs, err := s.lookupMX(ctx, domain)
	if err != nil || len(mxs) == 0 {
		log.Debug("verify: mx lookup failed", zap.Error(err))
		return false, nil
	}

	// net.LookupMX returns records sorted by preference; take the primary.
	host := strings.TrimSuffix(mxs[0].Host, ".")

	conn, err := s.dial(ctx, host)
	if err != nil {
		log.Debug("verify: smtp connect failed", zap.String("mx", host), zap.Error(err))
		return false, nil
	}
	defer conn.Quit() //nolint:errcheck

	if err := conn.Hello(s.heloDomain); err != nil {
		log.Debug("verify: helo rejected", zap.Error(err))
		return false, nil
	}
	if err := conn.Mail(s.fromAddr); err != nil {
		log.Debug("verify: mail from rejected", zap.Error(err))
		return false, nil
	}
	if err := conn.Rcpt(email); err != nil {
		// Rejection or greylisting — not confirmed, not proven invalid.
		log.Debug("verify: recipient not accepted", zap.Error(err))
		return false, nil
	}

	return true, nil
}

func defaultLookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}

func defaultDial(ctx context.Context, host string) (session, error) {
	d := net.Dialer{Timeout: 10 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, "25"))
	if err != nil {
		return nil, err
	}
	return newSMTPSession(conn, host)
}
