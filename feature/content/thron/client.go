// Package thron reads video platform content through the export, updated
// content and detail APIs.
package thron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// MaxWindowDays is the widest update window the platform accepts.
const MaxWindowDays = 60

// channelForType maps a content type onto the delivery channel that carries
// its playable rendition.
var channelForType = map[string]string{
	"video": "WEBHD",
	"audio": "WEBAUDIO",
	"image": "WEB",
}

// ExportContent is the identity block of an export item.
type ExportContent struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
}

// DeliveryChannel is one delivery channel of an export item.
type DeliveryChannel struct {
	ChannelType string `json:"channelType"`
}

// ItagName is one localized label of an itag definition.
type ItagName struct {
	Lang  string `json:"lang"`
	Label string `json:"label"`
}

// ItagDefinition is one tag attached to an export item.
type ItagDefinition struct {
	Names []ItagName `json:"names"`
}

// ExportItem is one item of an export or updated-content response.
type ExportItem struct {
	Content         ExportContent     `json:"content"`
	DeliveryInfo    []DeliveryChannel `json:"deliveryInfo"`
	ItagDefinitions []ItagDefinition  `json:"itagDefinitions"`
}

// Detail is the flattened per-content detail lookup result.
type Detail struct {
	ContentType  string
	ContentURL   string
	ThumbURL     string
	DurationMs   string
	NameTitle    string
	Description  string
	CreationDate string
	LastUpdate   string
}

type exportResponse struct {
	Items []ExportItem `json:"items"`
}

type detailResponse struct {
	Content struct {
		ContentType  string `json:"contentType"`
		CreationDate string `json:"creationDate"`
		LastUpdate   string `json:"lastUpdate"`
		DeliveryInfo []struct {
			ChannelType     string   `json:"channelType"`
			ContentURL      string   `json:"contentUrl"`
			DefaultThumbURL string   `json:"defaultThumbUrl"`
			ThumbsURL       []string `json:"thumbsUrl"`
			SysMetadata     []struct {
				Name  string          `json:"name"`
				Value json.RawMessage `json:"value"`
			} `json:"sysMetadata"`
		} `json:"deliveryInfo"`
		Locales []struct {
			Locale      string `json:"locale"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"locales"`
	} `json:"content"`
}

// Client talks to the video platform. The login token is fetched once per
// invocation; concurrent callers inside one process share a single in-flight
// login through singleflight.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger

	login singleflight.Group
}

// NewClient creates a platform client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Login authenticates the integration app and returns a request token.
func (c *Client) Login(ctx context.Context) (string, error) {
	token, err, _ := c.login.Do("login", func() (any, error) {
		form := url.Values{}
		form.Set("appId", c.cfg.AppID)
		form.Set("appKey", c.cfg.AppKey)

		endpoint := c.cfg.AdminHost + "/api/xadmin/resources/apps/loginApp/" + c.cfg.ClientID
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
			strings.NewReader(form.Encode()))
		if err != nil {
			return nil, fmt.Errorf("failed to build login request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("login request failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return nil, fmt.Errorf("login returned %d: %s", resp.StatusCode, body)
		}

		var out struct {
			AppUserTokenID string `json:"appUserTokenId"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to decode login response: %w", err)
		}
		return out.AppUserTokenID, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

// Export lists the full public catalogue.
func (c *Client) Export(ctx context.Context, token string, maxItems int) ([]ExportItem, error) {
	return c.listContent(ctx, token, "/api/xcontents/resources/sync/export/"+c.cfg.ClientID,
		nil, maxItems)
}

// UpdatedContent lists items changed inside a date window. Windows wider
// than the platform ceiling are clamped with a warning.
func (c *Client) UpdatedContent(ctx context.Context, token string, daysAgo, maxItems int) ([]ExportItem, error) {
	if daysAgo > MaxWindowDays {
		c.logger.Warn("platform rejects update windows older than the ceiling, clamping",
			zap.Int("days_ago", daysAgo),
			zap.Int("ceiling", MaxWindowDays))
		daysAgo = MaxWindowDays
	}
	now := time.Now()
	window := map[string]string{
		"fromDate": now.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
		"toDate":   now.Format("2006-01-02"),
	}
	return c.listContent(ctx, token, "/api/xcontents/resources/sync/updatedContent/"+c.cfg.ClientID,
		window, maxItems)
}

func (c *Client) listContent(ctx context.Context, token, path string, window map[string]string, maxItems int) ([]ExportItem, error) {
	criteria := map[string]any{
		"contentType": []string{"IMAGE", "VIDEO", "AUDIO"},
		"linkedCategoryOp": map[string]any{
			"linkedCategoryIds": []string{c.cfg.PublicFolder},
			"cascade":           true,
		},
	}
	for k, v := range window {
		criteria[k] = v
	}
	payload, err := json.Marshal(map[string]any{
		"criteria": criteria,
		"options": map[string]any{
			"returnLinkedCategories": false,
			"returnDeliveryInfo":     true,
			"returnItags":            true,
			"returnImetadata":        false,
			"thumbDivArea":           "",
		},
		"nextPage": "",
		"pageSize": maxItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode listing criteria: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+path,
		bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	req.Header.Set("X-TOKENID", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content listing failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("content listing returned %d: %s", resp.StatusCode, body)
	}

	var out exportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode content listing: %w", err)
	}
	return out.Items, nil
}

// ContentDetail fetches and flattens the detail record for one content id.
// The platform answers 418 for contents it refuses to describe; that is
// reported as a nil detail, not an error, so one bad item cannot stop a run.
func (c *Client) ContentDetail(ctx context.Context, contentID string) (*Detail, error) {
	query := url.Values{}
	query.Set("clientId", c.cfg.ClientID)
	query.Set("xcontentId", contentID)
	query.Set("templateId", "CE1")
	query.Set("pkey", c.cfg.PKey)

	endpoint := c.cfg.Host + "/api/xcontents/resources/delivery/getContentDetail?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build detail request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detail lookup for %s failed: %w", contentID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTeapot {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("platform refused detail lookup",
			zap.String("content_id", contentID),
			zap.ByteString("body", body))
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("detail lookup for %s returned %d: %s", contentID, resp.StatusCode, body)
	}

	var out detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode detail for %s: %w", contentID, err)
	}

	detail := &Detail{
		ContentType:  strings.ToLower(out.Content.ContentType),
		CreationDate: out.Content.CreationDate,
		LastUpdate:   out.Content.LastUpdate,
		DurationMs:   "0",
	}
	channel := channelForType[detail.ContentType]
	for _, info := range out.Content.DeliveryInfo {
		if !strings.Contains(info.ChannelType, channel) || info.ContentURL == "" {
			continue
		}
		detail.ContentURL = info.ContentURL
		detail.ThumbURL = info.DefaultThumbURL
		for _, thumb := range info.ThumbsURL {
			if strings.Contains(thumb, "720x0") {
				detail.ThumbURL = thumb
				break
			}
		}
		for _, meta := range info.SysMetadata {
			if strings.Contains(meta.Name, "Durationms") {
				detail.DurationMs = strings.Trim(string(meta.Value), `"`)
				break
			}
		}
	}
	for _, locale := range out.Content.Locales {
		if strings.Contains(locale.Locale, "EN") {
			detail.NameTitle = locale.Name
			detail.Description = locale.Description
			break
		}
	}
	return detail, nil
}
