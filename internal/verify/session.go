package verify

import (
	"net"
	"net/smtp"
)

// newSMTPSession wraps a live TCP connection in an SMTP client.
func newSMTPSession(conn net.Conn, host string) (session, error) {
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close() //nolint:errcheck
		return nil, err
	}
	return c, nil
}
