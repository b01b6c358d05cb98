package serviceimpl

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"

	"kanban-api/domain/models"
	"kanban-api/domain/ports"
	"kanban-api/domain/services"
	"kanban-api/pkg/logger"
)

type mailTemplate struct {
	subject string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

type mailData struct {
	AppName  string
	Name     string
	Link     string
	Project  string
	Task     string
	DueDate  string
	Role     string
	ExpiryIn string
}

var mailTemplates = map[ports.MailKind]mailTemplate{
	ports.MailVerification: {
		subject: "Verify your email",
		html: htmltemplate.Must(htmltemplate.New("verification").Parse(
			`<p>Hi {{.Name}},</p>
<p>Thanks for signing up to {{.AppName}}. Please confirm your email address:</p>
<p><a href="{{.Link}}">Verify email</a></p>
<p>This link expires in {{.ExpiryIn}}.</p>`)),
		text: texttemplate.Must(texttemplate.New("verification").Parse(
			`Hi {{.Name}},

Thanks for signing up to {{.AppName}}. Please confirm your email address:
{{.Link}}

This link expires in {{.ExpiryIn}}.
`)),
	},
	ports.MailPasswordReset: {
		subject: "Reset your password",
		html: htmltemplate.Must(htmltemplate.New("password_reset").Parse(
			`<p>Hi {{.Name}},</p>
<p>We received a request to reset your {{.AppName}} password.</p>
<p><a href="{{.Link}}">Reset password</a></p>
<p>This link expires in {{.ExpiryIn}}. If you did not ask for it, ignore this email.</p>`)),
		text: texttemplate.Must(texttemplate.New("password_reset").Parse(
			`Hi {{.Name}},

We received a request to reset your {{.AppName}} password:
{{.Link}}

This link expires in {{.ExpiryIn}}. If you did not ask for it, ignore this email.
`)),
	},
	ports.MailInvitation: {
		subject: "You have been invited to a project",
		html: htmltemplate.Must(htmltemplate.New("invitation").Parse(
			`<p>You have been invited to join <strong>{{.Project}}</strong> on {{.AppName}} as {{.Role}}.</p>
<p><a href="{{.Link}}">Accept invitation</a></p>
<p>The invitation expires in {{.ExpiryIn}}.</p>`)),
		text: texttemplate.Must(texttemplate.New("invitation").Parse(
			`You have been invited to join "{{.Project}}" on {{.AppName}} as {{.Role}}.

Accept the invitation:
{{.Link}}

The invitation expires in {{.ExpiryIn}}.
`)),
	},
	ports.MailAssignment: {
		subject: "New task assigned to you",
		html: htmltemplate.Must(htmltemplate.New("assignment").Parse(
			`<p>Hi {{.Name}},</p>
<p>You have been assigned to <strong>{{.Task}}</strong> in {{.Project}}.</p>
{{if .DueDate}}<p>Due date: {{.DueDate}}</p>{{end}}
<p><a href="{{.Link}}">Open project</a></p>`)),
		text: texttemplate.Must(texttemplate.New("assignment").Parse(
			`Hi {{.Name}},

You have been assigned to "{{.Task}}" in {{.Project}}.
{{if .DueDate}}Due date: {{.DueDate}}
{{end}}
Open project: {{.Link}}
`)),
	},
}

type NotificationServiceImpl struct {
	sender      ports.MailSender
	appName     string
	frontendURL string
}

func NewNotificationService(sender ports.MailSender, appName, frontendURL string) services.NotificationService {
	return &NotificationServiceImpl{
		sender:      sender,
		appName:     appName,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

func (s *NotificationServiceImpl) SendVerification(ctx context.Context, user *models.User, token string) error {
	return s.send(ctx, ports.MailVerification, user.Email, mailData{
		Name:     user.DisplayName(),
		Link:     s.frontendURL + "/verify-email/" + url.PathEscape(token),
		ExpiryIn: "24 hours",
	})
}

func (s *NotificationServiceImpl) SendPasswordReset(ctx context.Context, user *models.User, token string) error {
	return s.send(ctx, ports.MailPasswordReset, user.Email, mailData{
		Name:     user.DisplayName(),
		Link:     s.frontendURL + "/reset-password/" + url.PathEscape(token),
		ExpiryIn: "1 hour",
	})
}

func (s *NotificationServiceImpl) SendInvitation(ctx context.Context, invitation *models.ProjectInvitation, project *models.Project) error {
	query := url.Values{}
	query.Set("email", invitation.Email)
	query.Set("projectId", fmt.Sprint(invitation.ProjectID))
	query.Set("token", invitation.Token)
	query.Set("role", string(invitation.Role))

	return s.send(ctx, ports.MailInvitation, invitation.Email, mailData{
		Project:  project.Title,
		Role:     string(invitation.Role),
		Link:     s.frontendURL + "/confirm-invite?" + query.Encode(),
		ExpiryIn: "24 hours",
	})
}

func (s *NotificationServiceImpl) SendTaskAssignment(ctx context.Context, assignee *models.User, task *models.Task, project *models.Project) error {
	data := mailData{
		Name:    assignee.DisplayName(),
		Task:    task.Title,
		Project: project.Title,
		Link:    fmt.Sprintf("%s/dashboard/projects/%d", s.frontendURL, project.ID),
	}
	if task.DueDate != nil {
		data.DueDate = task.DueDate.Format("2006-01-02")
	}
	return s.send(ctx, ports.MailAssignment, assignee.Email, data)
}

func (s *NotificationServiceImpl) send(ctx context.Context, kind ports.MailKind, to string, data mailData) error {
	tmpl, ok := mailTemplates[kind]
	if !ok {
		return fmt.Errorf("unknown mail kind %q", kind)
	}
	data.AppName = s.appName

	var html, text bytes.Buffer
	if err := tmpl.html.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render %s html: %w", kind, err)
	}
	if err := tmpl.text.Execute(&text, data); err != nil {
		return fmt.Errorf("failed to render %s text: %w", kind, err)
	}

	msg := &ports.MailMessage{
		Kind:     kind,
		To:       to,
		Subject:  fmt.Sprintf("[%s] %s", s.appName, tmpl.subject),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to send email", "kind", kind, "to", to, "sender", s.sender.Name(), "error", err)
		return err
	}

	logger.InfoContext(ctx, "Email sent", "kind", kind, "to", to, "sender", s.sender.Name())
	return nil
}
