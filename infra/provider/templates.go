package provider

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/unas-org/unas-backend/pkg/config"
)

const (
	SubjectEmailVerification = "Confirme seu e-mail - UNAS"
	SubjectPasswordReset     = "Redefinição de senha - UNAS"

	verifyTemplate = "verify_email.html"
	resetTemplate  = "reset_password.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type mailData struct {
	AppName  string
	Username string
	Code     string
	Link     string
	TTL      string
}

// content renders the mail bodies shared by every Mailer implementation.
type content struct {
	appName string
	appURL  string
	ttl     time.Duration
}

func newContent(cfg *config.App) content {
	c := content{appName: cfg.Name, appURL: strings.TrimRight(cfg.URL, "/")}
	if cfg.Code != nil {
		c.ttl = cfg.Code.TTL
	}
	return c
}

// VerificationLink is the page that consumes an email verification code.
func (c content) VerificationLink(code string) string {
	return c.appURL + "/auth/verify-email?code=" + url.QueryEscape(code)
}

func (c content) data(username, code, link string) mailData {
	return mailData{
		AppName:  c.appName,
		Username: username,
		Code:     code,
		Link:     link,
		TTL:      fmt.Sprintf("%d minutos", int(c.ttl.Minutes())),
	}
}

func (c content) render(name string, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
