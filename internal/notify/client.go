// Package notify implements the best-effort login notification
// collaborator: a webhook POST that assigns a community role to the
// player. Failures here must never fail a login, so every error path
// logs and returns.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/meowcraft/launcher/internal/config"
	"github.com/meowcraft/launcher/internal/model"
)

// Client posts login notifications to the configured endpoint
type Client struct {
	cfg        config.NotifyConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a notification client. An empty URL disables it.
func NewClient(cfg config.NotifyConfig, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With(slog.String("component", "notify")),
	}
}

// rolePayload field names are the bot endpoint's contract
type rolePayload struct {
	MinecraftUsername string `json:"minecraftUsername"`
	MinecraftUUID     string `json:"minecraftUuid"`
	Secret            string `json:"secret"`
	RoleID            string `json:"roleId"`
}

// Notify reports a successful login. Best-effort: all failures are
// logged and swallowed, and the request is bounded by the configured
// timeout.
func (c *Client) Notify(ctx context.Context, displayName string, id model.IdentityID) {
	if c.cfg.URL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(rolePayload{
		MinecraftUsername: displayName,
		MinecraftUUID:     string(id),
		Secret:            c.cfg.Secret,
		RoleID:            c.cfg.RoleID,
	})
	if err != nil {
		c.logger.Warn("could not encode notification", slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("could not build notification request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("notification endpoint unreachable", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("notification endpoint rejected request",
			slog.Int("status", resp.StatusCode))
		return
	}

	c.logger.Info("login notification sent",
		slog.String("display_name", displayName),
		slog.String("identity_id", string(id)))
}
