package qr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"waifubot/internal/core/domain"
)

const imageSize = "512x512"

// QRServer wraps the goqr.me rendering endpoint, which returns raw PNG
// bytes.
type QRServer struct {
	endpoint string
}

func NewQRServer(endpoint string) *QRServer {
	return &QRServer{endpoint: endpoint}
}

func (q *QRServer) Encode(ctx context.Context, text string) ([]byte, error) {
	u, err := url.Parse(q.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid QR endpoint: %w", err)
	}

	params := u.Query()
	params.Set("data", text)
	params.Set("size", imageSize)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating QR request: %w", err)
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: QR status %d", domain.ErrInvalidResponse, res.StatusCode)
	}

	image, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading QR response: %w", err)
	}

	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty QR image", domain.ErrInvalidResponse)
	}

	return image, nil
}
