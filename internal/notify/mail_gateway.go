package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meridian-be/internal/logger"

	"go.uber.org/zap"
)

const defaultMailBaseURL = "https://api.mailpost.io"

type mailGateway struct {
	apiKey        string
	baseURL       string
	fromAddr      string
	operatorEmail string
	httpClient    *http.Client
}

// ----------------- Constructor -----------------

func NewMailGateway(apiKey, baseURL, fromAddr, operatorEmail string) Dispatcher {
	if apiKey == "" {
		logger.L().Warn("mail API key is empty")
	}
	if baseURL == "" {
		baseURL = defaultMailBaseURL
	}

	return &mailGateway{
		apiKey:        apiKey,
		baseURL:       baseURL,
		fromAddr:      fromAddr,
		operatorEmail: operatorEmail,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- Dispatcher -----------------

func (g *mailGateway) NotifyCustomer(ctx context.Context, notice OrderNotice) error {
	if notice.CustomerEmail == "" {
		logger.FromCtx(ctx).Debug("no customer email on order, skipping confirmation",
			zap.String("order_number", notice.OrderNumber),
		)
		return nil
	}

	subject := fmt.Sprintf("Order confirmed — %s", notice.OrderNumber)
	return g.send(ctx, notice.CustomerEmail, subject, customerBody(notice))
}

func (g *mailGateway) NotifyOperator(ctx context.Context, notice OrderNotice) error {
	if g.operatorEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("New order %s (%s)", notice.OrderNumber, notice.PaymentReference)
	return g.send(ctx, g.operatorEmail, subject, operatorBody(notice))
}

func (g *mailGateway) send(ctx context.Context, to, subject, text string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("to", to),
		zap.String("subject", subject),
	)

	body := map[string]any{
		"from":    g.fromAddr,
		"to":      []string{to},
		"subject": subject,
		"text":    text,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("mail API request failed", zap.Error(err))
		return fmt.Errorf("mail API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		log.Error("mail API returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	log.Info("notification sent")
	return nil
}

// ----------------- Bodies -----------------

func customerBody(n OrderNotice) string {
	var b strings.Builder

	name := n.CustomerName
	if name == "" {
		name = "there"
	}

	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Thanks for your order %s placed on %s.\n\n",
		n.OrderNumber, n.PlacedAt.Format("Jan 2, 2006"))

	for _, it := range n.Items {
		fmt.Fprintf(&b, "  %dx %s — $%.2f\n", it.Quantity, it.Name, it.Price)
	}

	fmt.Fprintf(&b, "\nTotal: $%.2f\n", n.Total)
	b.WriteString("\nWe'll let you know as soon as it ships.\n")

	return b.String()
}

func operatorBody(n OrderNotice) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s\n", n.OrderNumber)
	fmt.Fprintf(&b, "Payment reference: %s\n", n.PaymentReference)
	fmt.Fprintf(&b, "Total: $%.2f\n\n", n.Total)

	for _, it := range n.Items {
		fmt.Fprintf(&b, "  %dx %s\n", it.Quantity, it.Name)
	}

	return b.String()
}
