package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
	"storefront/internal/config"
)

type IMailService interface {
	SendMailToNotifyUser(
		to, subject, body, ctaText, ctaURL string,
	) error
	SendMailToResetPassword(email, otp string) error
	SendOrderStatusChanged(n OrderStatusNotice) error
	SendPaymentSubmitted(n PaymentNotice) error
}

type OrderStatusNotice struct {
	To       string
	FullName string
	OrderID  string
	PlanName string
	Status   string
	Note     string
}

type PaymentNotice struct {
	OrderID       string
	CustomerEmail string
	PlanName      string
	Amount        string
	Method        string
	TransactionID string
	ScreenshotURL string
}

// mailTransport delivers an already rendered message.
type mailTransport interface {
	deliver(to, subject, htmlBody, textBody string) error
}

type mailService struct {
	transport   mailTransport
	appName     string
	appBaseURL  string
	adminNotify string
	htmlTpl     *template.Template
	textTpl     *texttemplate.Template
}

// NewMailService picks the transport named by MAIL_PROVIDER.
func NewMailService(cfg *config.Config, log *zap.Logger) (IMailService, error) {
	var transport mailTransport
	switch cfg.Mail.Provider {
	case "smtp":
		transport = &smtpTransport{cfg: SMTPConfig{
			Host:       cfg.Mail.SMTPHost,
			Port:       cfg.Mail.SMTPPort,
			Username:   cfg.Mail.SMTPUsername,
			Password:   cfg.Mail.SMTPPassword,
			From:       cfg.Mail.From,
			FromName:   cfg.Mail.FromName,
			UseSSL:     cfg.Mail.SMTPUseSSL,
			RequireTLS: cfg.Mail.SMTPRequireTLS,
		}}
	case "sendgrid":
		transport = newSendGridTransport(cfg.Mail.SendGridAPIKey, cfg.Mail.FromName, cfg.Mail.From)
	case "console":
		transport = &consoleTransport{log: log.Named("mail")}
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Mail.Provider)
	}

	return newMailService(transport, cfg.Mail.FromName, cfg.AppBaseURL, cfg.Mail.AdminNotifyEmail), nil
}

func newMailService(transport mailTransport, appName, appBaseURL, adminNotify string) *mailService {
	return &mailService{
		transport:   transport,
		appName:     appName,
		appBaseURL:  strings.TrimRight(appBaseURL, "/"),
		adminNotify: adminNotify,
		htmlTpl:     template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl:     texttemplate.Must(texttemplate.New("text").Parse(plainTextTemplate)),
	}
}

// ------------------- Public API -------------------

func (s *mailService) SendMailToNotifyUser(
	to, subject, body, ctaText, ctaURL string,
) error {
	return s.sendTemplated(to, EmailData{
		Title:     subject,
		Intro:     body,
		ButtonURL: ctaURL,
		ButtonTxt: ctaText,
	})
}

func (s *mailService) SendMailToResetPassword(to, otp string) error {
	link := fmt.Sprintf("%s/reset-password?email=%s", s.appBaseURL, url.QueryEscape(to))

	return s.sendTemplated(to, EmailData{
		Title:     "Reset your password",
		Intro:     "We received a request to reset your password. Enter the code below on the reset page. It expires in 15 minutes. If you didn't request this, you can safely ignore this email.",
		Code:      otp,
		ButtonURL: link,
		ButtonTxt: "Reset Password",
	})
}

func (s *mailService) SendOrderStatusChanged(n OrderStatusNotice) error {
	intro := fmt.Sprintf("Hi %s, your order for %s is now %s.", n.FullName, n.PlanName, n.Status)
	switch n.Status {
	case "completed":
		intro += " Your subscription is active."
	case "rejected":
		intro += " Please check the note below and submit a new payment if needed."
	}

	return s.sendTemplated(n.To, EmailData{
		Title:     fmt.Sprintf("Order %s", n.Status),
		Intro:     intro,
		Note:      n.Note,
		ButtonURL: fmt.Sprintf("%s/orders/%s", s.appBaseURL, n.OrderID),
		ButtonTxt: "View order",
	})
}

// SendPaymentSubmitted alerts the back-office; no-op without ADMIN_NOTIFY_EMAIL.
func (s *mailService) SendPaymentSubmitted(n PaymentNotice) error {
	if s.adminNotify == "" {
		return nil
	}

	intro := fmt.Sprintf("%s submitted a payment of %s for %s via %s (transaction %s).",
		n.CustomerEmail, n.Amount, n.PlanName, n.Method, n.TransactionID)

	return s.sendTemplated(s.adminNotify, EmailData{
		Title:     "New payment awaiting review",
		Intro:     intro,
		ButtonURL: fmt.Sprintf("%s/admin/orders/%s", s.appBaseURL, n.OrderID),
		ButtonTxt: "Review order",
	})
}

// ------------------- Rendering -------------------

type EmailData struct {
	Title     string
	Intro     string
	Code      string
	Note      string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f1f5f9; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 24px 32px; border-bottom: 1px solid #e2e8f0; font-weight: 700; color: #2563eb; text-transform: uppercase; }
    .hero { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 24px; }
    p { margin: 0 0 16px; line-height: 1.6; color: #475569; }
    .code { font-size: 28px; letter-spacing: 8px; font-weight: 700; color: #0f172a; }
    .note { padding: 12px 16px; background: #f8fafc; border-left: 3px solid #94a3b8; }
    .btn { display: inline-block; padding: 14px 28px; background: #2563eb; color: #ffffff !important; text-decoration: none; border-radius: 8px; font-weight: 600; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Code}}<p class="code">{{.Code}}</p>{{end}}
      {{if .Note}}<p class="note">{{.Note}}</p>{{end}}
      {{if .ButtonURL}}<p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
      <p style="font-size:13px">If the button doesn't work, open {{.ButtonURL}}</p>{{end}}
    </div>
    <div class="footer">&copy; {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Code}}
Code: {{.Code}}
{{end}}{{if .Note}}
Note: {{.Note}}
{{end}}{{if .ButtonURL}}
Open this link:
{{.ButtonURL}}
{{end}}
{{.AppName}} (c) {{.Year}}
`

func (s *mailService) sendTemplated(to string, data EmailData) error {
	data.AppName = s.appName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.transport.deliver(to, data.Title, hb.String(), tb.String())
}

// ------------------- SMTP -------------------

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // e.g. 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string // envelope from, e.g. "no-reply@yourapp.com"
	FromName   string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool // fail if STARTTLS is not available
}

type smtpTransport struct {
	cfg SMTPConfig
}

func (s *smtpTransport) deliver(to, subject, htmlBody, textBody string) error {
	msg, err := buildMIMEMessage(formatFromHeader(s.cfg.FromName, s.cfg.From), to, subject, htmlBody, textBody)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func buildMIMEMessage(from, to, subject, htmlBody, textBody string) ([]byte, error) {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", from)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	for _, part := range []struct{ ctype, body string }{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		write("--%s\r\n", boundary)
		write("Content-Type: %s; charset=UTF-8\r\n", part.ctype)
		write("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&msg)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
		write("\r\n")
	}
	write("--%s--\r\n", boundary)

	return msg.Bytes(), nil
}

func formatFromHeader(name, from string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return from
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("UTF-8", name), from)
}

// ------------------- SendGrid -------------------

type sendGridTransport struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func newSendGridTransport(key, fromName, fromEmail string) *sendGridTransport {
	return &sendGridTransport{
		client: sendgrid.NewSendClient(key),
		from:   sgmail.NewEmail(fromName, fromEmail),
	}
}

func (s *sendGridTransport) deliver(to, subject, htmlBody, textBody string) error {
	m := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), textBody, htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// ------------------- Console -------------------

type consoleTransport struct {
	log *zap.Logger
}

func (c *consoleTransport) deliver(to, subject, _, textBody string) error {
	c.log.Info("mail", zap.String("to", to), zap.String("subject", subject), zap.String("body", textBody))
	return nil
}
