package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	gomail "gopkg.in/mail.v2"

	"series-extract/pipeline"
)

// EmailNotifier handles sending email notifications
type EmailNotifier struct {
	smtpHost       string
	smtpPort       int
	senderEmail    string
	senderPass     string
	recipientEmail string
	htmlTemplate   *template.Template
}

// EmailConfig contains configuration for email notifications
type EmailConfig struct {
	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
}

// Enabled reports whether enough settings are present to send mail
func (c EmailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.RecipientEmail != ""
}

const summaryTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Series Extract - {{.Summary.SeriesTitle}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; }
        h1 { color: #0071c5; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        th { background-color: #f4f4f4; text-align: left; padding: 10px; }
        td { padding: 10px; border-bottom: 1px solid #ddd; }
        .footer { font-size: 12px; color: #666; margin-top: 50px; text-align: center; }
        .count { font-weight: bold; color: #e50914; }
    </style>
</head>
<body>
    <h1>{{.Summary.SeriesTitle}} ({{.Summary.SeriesTconst}})</h1>
    <p>Extraction finished on {{.Date}}: <span class="count">{{.Summary.Episodes}}</span> episodes across {{.Summary.Seasons}} season(s).</p>

    <table>
        <tr><th>Table</th><th>Rows</th></tr>
        <tr><td>Episodes</td><td>{{.Summary.Episodes}}</td></tr>
        <tr><td>Ratings</td><td>{{.Summary.Ratings}}</td></tr>
        <tr><td>Crew</td><td>{{.Summary.Crew}}</td></tr>
        <tr><td>Characters</td><td>{{.Summary.Characters}}</td></tr>
        <tr><td>Names</td><td>{{.Summary.Names}}</td></tr>
    </table>

    {{if .Files}}
    <p>Files written to {{.Summary.OutputPath}}:</p>
    <ul>
        {{range .Files}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}

    <div class="footer">
        <p>This is an automated email from Series Extract. Please do not reply.</p>
    </div>
</body>
</html>
`

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(config EmailConfig) (*EmailNotifier, error) {
	tmpl, err := template.New("email").Parse(summaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}

	return &EmailNotifier{
		smtpHost:       config.SMTPHost,
		smtpPort:       config.SMTPPort,
		senderEmail:    config.SenderEmail,
		senderPass:     config.SenderPassword,
		recipientEmail: config.RecipientEmail,
		htmlTemplate:   tmpl,
	}, nil
}

// GetEmailConfigFromEnv loads email configuration from environment variables
func GetEmailConfigFromEnv() EmailConfig {
	// Parse SMTP port with default value of 587 if not specified or invalid
	smtpPort := 587
	if portStr := os.Getenv("EMAIL_SMTP_PORT"); portStr != "" {
		if p, err := fmt.Sscanf(portStr, "%d", &smtpPort); err != nil || p != 1 {
			log.Printf("Invalid SMTP port '%s', using default 587", portStr)
			smtpPort = 587
		}
	}

	smtpHost := os.Getenv("EMAIL_SMTP_HOST")
	senderEmail := os.Getenv("EMAIL_SENDER")
	password := os.Getenv("EMAIL_PASSWORD")
	recipient := os.Getenv("EMAIL_RECIPIENT")

	passwordDisplay := ""
	if len(password) > 0 {
		if len(password) > 8 {
			passwordDisplay = password[:4] + "..." + password[len(password)-4:]
		} else {
			passwordDisplay = "***"
		}
	}

	log.Printf("Email Configuration: Host=%s, Port=%d, Sender=%s, Token=%s, Recipient=%s",
		smtpHost, smtpPort, senderEmail, passwordDisplay, recipient)

	return EmailConfig{
		SMTPHost:       smtpHost,
		SMTPPort:       smtpPort,
		SenderEmail:    senderEmail,
		SenderPassword: password,
		RecipientEmail: recipient,
	}
}

// buildMessage renders the summary into a multipart message
func (n *EmailNotifier) buildMessage(summary pipeline.Summary, now time.Time) (*gomail.Message, error) {
	files := make([]string, len(summary.Files))
	for i, path := range summary.Files {
		files[i] = filepath.Base(path)
	}

	data := struct {
		Date    string
		Summary pipeline.Summary
		Files   []string
	}{
		Date:    now.Format("January 2, 2006 at 3:04 PM"),
		Summary: summary,
		Files:   files,
	}

	var emailBody bytes.Buffer
	if err := n.htmlTemplate.Execute(&emailBody, data); err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.senderEmail)
	m.SetHeader("To", n.recipientEmail)
	m.SetHeader("Subject", fmt.Sprintf("Series Extract: %s, %d episodes (%d seasons)",
		summary.SeriesTitle, summary.Episodes, summary.Seasons))

	plainText := fmt.Sprintf(
		"Series Extract\n\n"+
			"%s (%s) extracted on %s.\n"+
			"Episodes: %d, ratings: %d, crew: %d, characters: %d, names: %d\n\n"+
			"Output: %s\n\n"+
			"This is an automated email from Series Extract. Please do not reply.",
		summary.SeriesTitle, summary.SeriesTconst, data.Date,
		summary.Episodes, summary.Ratings, summary.Crew, summary.Characters, summary.Names,
		summary.OutputPath)

	m.SetBody("text/plain", plainText)
	m.AddAlternative("text/html", emailBody.String())
	return m, nil
}

// NotifyExtraction sends an email summarizing a finished extraction
func (n *EmailNotifier) NotifyExtraction(summary pipeline.Summary) error {
	if n.recipientEmail == "" {
		log.Println("No recipient email configured, skipping notification")
		return nil
	}

	m, err := n.buildMessage(summary, time.Now())
	if err != nil {
		return err
	}

	// Mailtrap style credentials: username "api", password is the API token
	d := gomail.NewDialer(n.smtpHost, n.smtpPort, "api", n.senderPass)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email notification sent to %s for %s", n.recipientEmail, summary.SeriesTitle)
	return nil
}
