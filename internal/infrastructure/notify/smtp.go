// Package notify tells the operator about new orders. Delivery is best-effort:
// callers only log and count failures.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// SMTPConfig holds the relay settings. An empty User disables mail delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

// Enabled reports whether enough is configured to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.To != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier mails one HTML message per order. smtp.SendMail upgrades the
// connection with STARTTLS when the relay offers it.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send sendFunc
	now  func() time.Time
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

func (n *SMTPNotifier) Notify(ctx context.Context, order domain.Order) error {
	if !n.cfg.Enabled() {
		return errors.New("smtp: not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	if err := n.send(addr, auth, n.cfg.User, []string{n.cfg.To}, n.message(order)); err != nil {
		return fmt.Errorf("smtp send order %s: %w", order.ID, err)
	}
	return nil
}

// Subject is the mail subject for order.
func Subject(order domain.Order) string {
	return "🍒 Commande Cereza: " + order.ClientName
}

func (n *SMTPNotifier) message(order domain.Order) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.User)
	fmt.Fprintf(&b, "To: %s\r\n", n.cfg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", Subject(order)))
	fmt.Fprintf(&b, "Date: %s\r\n", n.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(itemsHTML(order))
	return b.Bytes()
}

func itemsHTML(order domain.Order) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<p>%s (%s) : commande %s</p>", html.EscapeString(order.ClientName),
		html.EscapeString(order.ClientContact), html.EscapeString(order.ID))
	b.WriteString("<ul>")
	for _, it := range order.Items {
		fmt.Fprintf(&b, "<li>%s (x%d)</li>", html.EscapeString(it.Name), it.Quantity)
	}
	b.WriteString("</ul>")
	return b.String()
}
