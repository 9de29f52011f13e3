package external

import (
	"context"
	"fmt"
	"net/http"
)

type sendEmailParams struct {
	ClientIDs []string `json:"clientIds"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
}

// SendClientEmail asks the core API to email the given clients. Returns the
// number of mails actually sent.
func (c *CoreClient) SendClientEmail(ctx context.Context, clientIDs []string, title, message string) (int, error) {
	var resp struct {
		SentCount int `json:"sentCount"`
	}
	params := sendEmailParams{ClientIDs: clientIDs, Title: title, Message: message}
	if err := c.do(ctx, http.MethodPost, "/api/v1/notifications/email", params, &resp); err != nil {
		return 0, fmt.Errorf("failed to send client email: %w", err)
	}
	return resp.SentCount, nil
}
