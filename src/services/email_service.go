package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/username/metricsanalyzer/src/config"
	"github.com/username/metricsanalyzer/src/logger"
	"github.com/username/metricsanalyzer/src/models"
)

func NewEmailService() EmailService {
	if config.Cfg == nil {
		slog.Error("Configuration (config.Cfg) is nil. Email service will default to mock.")
		return &MockEmailService{}
	}

	provider := strings.ToLower(config.Cfg.EmailServiceProvider)
	logger.L.Info("Initializing email service", "provider", provider)

	switch provider {
	case "mailgun":
		if config.Cfg.MailgunDomain == "" || config.Cfg.MailgunPrivateAPIKey == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("Mailgun configuration incomplete (Domain, API Key, or SenderEmail missing). Falling back to MockEmailService.")
			return &MockEmailService{}
		}
		mg := mailgun.NewMailgun(config.Cfg.MailgunDomain, config.Cfg.MailgunPrivateAPIKey)
		logger.L.Info("Mailgun client initialized", "domain", config.Cfg.MailgunDomain)
		return &MailgunEmailService{
			mg:          mg,
			senderEmail: config.Cfg.SenderEmail,
			senderName:  config.Cfg.SenderName,
		}
	case "smtp":
		if config.Cfg.SMTPServer == "" || config.Cfg.SMTPUser == "" || config.Cfg.SMTPPassword == "" || config.Cfg.SenderEmail == "" {
			logger.L.Warn("SMTP configuration incomplete. Falling back to MockEmailService.")
			return &MockEmailService{}
		}
		return &SMTPEmailService{
			SMTPServer:   config.Cfg.SMTPServer,
			SMTPPort:     config.Cfg.SMTPPort,
			SMTPUser:     config.Cfg.SMTPUser,
			SMTPPassword: config.Cfg.SMTPPassword,
			SenderEmail:  config.Cfg.SenderEmail,
		}
	default:
		logger.L.Info("Defaulting to MockEmailService.")
		return &MockEmailService{}
	}
}

// digestSubject and digestBody render the operator digest listing
// every raw value the rule tables failed to classify in a run.
func digestSubject(result *models.AggregateResult) string {
	return fmt.Sprintf("Metrics Analyzer: itens não mapeados no relatório %s (%s)", result.ReportID, result.Platform)
}

func digestBody(result *models.AggregateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Relatório %s (%s) processado com itens não mapeados.\n\n", result.ReportID, result.Platform)

	if len(result.UnmappedProducts) > 0 {
		b.WriteString("Produtos não mapeados:\n")
		for _, name := range result.UnmappedProducts {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
		b.WriteString("\n")
	}
	if len(result.UnmappedOrigins) > 0 {
		b.WriteString("Origens não mapeadas:\n")
		for _, origin := range result.UnmappedOrigins {
			fmt.Fprintf(&b, "  - %s\n", origin)
		}
		b.WriteString("\n")
	}
	if len(result.UnknownCodes) > 0 {
		b.WriteString("Códigos de preço desconhecidos:\n")
		for _, uc := range result.UnknownCodes {
			fmt.Fprintf(&b, "  - %s (%s): %d venda(s)\n", uc.Code, uc.ProductName, uc.Quantity)
		}
		b.WriteString("\n")
	}

	b.WriteString("Atualize as tabelas de mapeamento para que essas vendas sejam classificadas.\n")
	return b.String()
}

type SMTPEmailService struct {
	SMTPServer   string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SenderEmail  string
}

func (s *SMTPEmailService) SendUnmappedDigest(toEmail string, result *models.AggregateResult) error {
	from := s.SenderEmail
	to := []string{toEmail}
	subject := digestSubject(result)
	body := digestBody(result)

	header := make(map[string]string)
	header["From"] = from
	header["To"] = toEmail
	header["Subject"] = subject
	header["MIME-version"] = "1.0"
	header["Content-Type"] = "text/plain; charset=\"UTF-8\""
	message := ""
	for k, v := range header {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body
	auth := smtp.PlainAuth("", s.SMTPUser, s.SMTPPassword, s.SMTPServer)
	addr := fmt.Sprintf("%s:%d", s.SMTPServer, s.SMTPPort)
	if err := smtp.SendMail(addr, auth, from, to, []byte(message)); err != nil {
		logger.L.Error("Failed to send unmapped-items digest via SMTP", "error", err, "to", toEmail)
		return fmt.Errorf("failed to send digest via SMTP: %w", err)
	}
	logger.L.Info("Unmapped-items digest sent successfully via SMTP", "to", toEmail, "reportID", result.ReportID)
	return nil
}

type MailgunEmailService struct {
	mg          mailgun.Mailgun
	senderEmail string
	senderName  string
}

func (s *MailgunEmailService) SendUnmappedDigest(toEmail string, result *models.AggregateResult) error {
	from := fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail)

	message := s.mg.NewMessage(from, digestSubject(result), digestBody(result), toEmail)
	message.AddTag("unmapped-digest")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()
	resp, id, err := s.mg.Send(ctx, message)
	if err != nil {
		logger.L.Error("Failed to send unmapped-items digest via Mailgun", "error", err, "to", toEmail, "mailgunResp", resp, "mailgunId", id)
		return fmt.Errorf("mailgun send failed: %w. Response: %s", err, resp)
	}
	logger.L.Info("Unmapped-items digest sent successfully via Mailgun", "to", toEmail, "id", id, "reportID", result.ReportID)
	return nil
}

type MockEmailService struct{}

func (m *MockEmailService) SendUnmappedDigest(toEmail string, result *models.AggregateResult) error {
	logger.L.Info("MockEmailService: Would send unmapped-items digest.",
		"to", toEmail,
		"reportID", result.ReportID,
		"unmappedProducts", len(result.UnmappedProducts),
		"unmappedOrigins", len(result.UnmappedOrigins),
		"unknownCodes", len(result.UnknownCodes))
	return nil
}
