package google

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"outreach-backend/application/ports"
	"outreach-backend/pkg/errors"
	"outreach-backend/pkg/observability"
)

// GmailAdapter implements ports.GmailGateway on the Gmail API.
type GmailAdapter struct {
	auth    *Auth
	metrics *observability.Collector
}

func NewGmailAdapter(auth *Auth, metrics *observability.Collector) *GmailAdapter {
	return &GmailAdapter{auth: auth, metrics: metrics}
}

var _ ports.GmailGateway = (*GmailAdapter)(nil)

func (g *GmailAdapter) service(ctx context.Context) (*gmail.Service, error) {
	ts, err := g.auth.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, errors.NewExternalError("gmail", err)
	}
	return srv, nil
}

func (g *GmailAdapter) RecentMessages(ctx context.Context, max int64) ([]ports.InboxMessage, error) {
	srv, err := g.service(ctx)
	if err != nil {
		return nil, err
	}

	list, err := srv.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(max).
		Context(ctx).
		Do()
	if err != nil {
		g.observe("error")
		return nil, errors.NewExternalError("gmail", err)
	}
	g.observe("ok")

	out := make([]ports.InboxMessage, 0, len(list.Messages))
	for _, ref := range list.Messages {
		full, err := srv.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			g.observe("error")
			continue
		}
		g.observe("ok")
		out = append(out, parseMessage(full))
	}
	return out, nil
}

func (g *GmailAdapter) MarkRead(ctx context.Context, messageID string) error {
	srv, err := g.service(ctx)
	if err != nil {
		return err
	}

	_, err = srv.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		g.observe("error")
		return errors.NewExternalError("gmail", err)
	}
	g.observe("ok")
	return nil
}

func (g *GmailAdapter) Watch(ctx context.Context, topicName string) error {
	srv, err := g.service(ctx)
	if err != nil {
		return err
	}

	_, err = srv.Users.Watch("me", &gmail.WatchRequest{
		TopicName: topicName,
		LabelIds:  []string{"INBOX"},
	}).Context(ctx).Do()
	if err != nil {
		g.observe("error")
		return errors.NewExternalError("gmail", err)
	}
	g.observe("ok")
	return nil
}

func (g *GmailAdapter) StopWatch(ctx context.Context) error {
	srv, err := g.service(ctx)
	if err != nil {
		return err
	}

	if err := srv.Users.Stop("me").Context(ctx).Do(); err != nil {
		g.observe("error")
		return errors.NewExternalError("gmail", err)
	}
	g.observe("ok")
	return nil
}

func parseMessage(m *gmail.Message) ports.InboxMessage {
	msg := ports.InboxMessage{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Snippet:  m.Snippet,
		Date:     time.UnixMilli(m.InternalDate),
	}
	for _, label := range m.LabelIds {
		if label == "UNREAD" {
			msg.IsUnread = true
		}
	}
	if m.Payload == nil {
		return msg
	}

	for _, h := range m.Payload.Headers {
		switch h.Name {
		case "From":
			msg.From = h.Value
			msg.FromEmail = extractAddress(h.Value)
		case "To":
			msg.To = h.Value
		case "Subject":
			msg.Subject = h.Value
		}
	}
	msg.Body = extractBody(m.Payload)
	return msg
}

// extractAddress pulls the bare address out of a "Name <addr>" header.
func extractAddress(header string) string {
	if start := strings.LastIndex(header, "<"); start >= 0 {
		if end := strings.LastIndex(header, ">"); end > start {
			return strings.ToLower(strings.TrimSpace(header[start+1 : end]))
		}
	}
	return strings.ToLower(strings.TrimSpace(header))
}

// extractBody walks the MIME tree for the first text/plain part, falling
// back to the top-level body.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	for _, part := range payload.Parts {
		if body := extractBody(part); body != "" {
			return body
		}
	}
	if payload.Body != nil && payload.Body.Data != "" {
		return decodeBody(payload.Body.Data)
	}
	return ""
}

func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (g *GmailAdapter) observe(status string) {
	if g.metrics != nil {
		g.metrics.GoogleCalls.WithLabelValues("gmail", status).Inc()
	}
}
