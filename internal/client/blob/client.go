// Package blob uploads binary payloads to content-addressed storage servers
// and verifies what the server claims to have stored against a locally
// computed hash. The server's self-reported hash is never trusted blindly.
package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"

	"github.com/dmitrijs2005/satchel/internal/client/event"
	"github.com/dmitrijs2005/satchel/internal/client/signer"
	"github.com/dmitrijs2005/satchel/internal/common"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

// Descriptor is the server's account of a stored blob.
type Descriptor struct {
	URL      string `json:"url"`
	SHA256   string `json:"sha256"`
	Size     int64  `json:"size"`
	MimeType string `json:"type"`
}

// Client uploads blobs to a list of servers, first verified success wins.
type Client struct {
	http     *http.Client
	maxBytes int64
	timeout  time.Duration
	builder  *event.Builder
	gateway  *signer.Gateway
	log      logging.Logger
}

func NewClient(maxBytes int64, timeout time.Duration, builder *event.Builder, gateway *signer.Gateway, log logging.Logger) *Client {
	return &Client{
		http:     &http.Client{},
		maxBytes: maxBytes,
		timeout:  timeout,
		builder:  builder,
		gateway:  gateway,
		log:      log,
	}
}

// Upload computes the payload hash locally, then tries servers in configured
// order until one both accepts the blob and reports back the same hash.
// A hash mismatch is an integrity failure for that server only; the client
// falls through to the next one. The size bound is enforced before anything
// touches the network, including the signing round trip.
func (c *Client) Upload(ctx context.Context, data []byte, mimeType string, s signer.Signer, servers []string) (*Descriptor, error) {
	if len(servers) == 0 {
		return nil, fmt.Errorf("%w: no blob servers given", common.ErrorValidation)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", common.ErrorTooLarge, len(data), c.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", common.ErrorValidation)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	auth, err := c.authorization(ctx, s, hash)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, server := range servers {
		desc, err := c.put(ctx, server, data, mimeType, auth)
		if err != nil {
			c.log.Warn(ctx, "blob server attempt failed", "server", server, "reason", err.Error())
			lastErr = err
			continue
		}
		if desc.SHA256 != hash {
			lastErr = fmt.Errorf("%w: %s reported %s, computed %s", common.ErrorIntegrity, server, desc.SHA256, hash)
			c.log.Warn(ctx, "blob server hash mismatch", "server", server, "reported", desc.SHA256)
			continue
		}
		if desc.Size == 0 {
			desc.Size = int64(len(data))
		}
		if desc.MimeType == "" {
			desc.MimeType = mimeType
		}
		c.log.Info(ctx, "blob uploaded", "server", server, "sha256", hash, "size", desc.Size)
		return desc, nil
	}

	return nil, fmt.Errorf("%w: %w", common.ErrorAllServersFailed, lastErr)
}

// authorization builds and signs the upload-authorization event the servers
// require, and packs it into an Authorization header value.
func (c *Client) authorization(ctx context.Context, s signer.Signer, hash string) (string, error) {
	if s == nil {
		return "", common.ErrorSignerUnavailable
	}
	pk, err := s.PublicKey(ctx)
	if err != nil {
		return "", err
	}

	expiration := strconv.FormatInt(time.Now().Add(5*time.Minute).Unix(), 10)
	tags := nostr.Tags{
		{"t", "upload"},
		{"x", hash},
		{"expiration", expiration},
	}

	ev, err := c.builder.Build(common.KindBlobAuth, "upload", pk, tags)
	if err != nil {
		return "", err
	}
	if err := c.gateway.Sign(ctx, ev, s); err != nil {
		return "", err
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshalling auth event: %w", err)
	}
	return "Nostr " + base64.StdEncoding.EncodeToString(payload), nil
}

func (c *Client) put(ctx context.Context, server string, data []byte, mimeType, auth string) (*Descriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := strings.TrimRight(server, "/") + "/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", auth)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}

	desc := &Descriptor{}
	if err := json.NewDecoder(resp.Body).Decode(desc); err != nil {
		return nil, fmt.Errorf("decoding descriptor: %w", err)
	}
	return desc, nil
}
