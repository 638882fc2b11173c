package gateway

import (
	"context"

	"github.com/yomogi/ghostboard/client"
	"github.com/yomogi/ghostboard/internal/domain"
	"github.com/yomogi/ghostboard/internal/usecase"
)

// FeedGateway adapts the social status API client to the feed port.
type FeedGateway struct {
	client *client.Client
}

func NewFeedGateway(cl *client.Client) *FeedGateway {
	return &FeedGateway{client: cl}
}

func (g *FeedGateway) PostStatus(ctx context.Context, text string) (domain.RemoteStatus, error) {
	status, err := g.client.PostStatus(ctx, text)
	if err != nil {
		return domain.RemoteStatus{}, err
	}
	return toRemoteStatus(status), nil
}

func (g *FeedGateway) ListRecent(ctx context.Context, accountRef string, limit int) ([]domain.RemoteStatus, error) {
	statuses, err := g.client.ListRecent(ctx, accountRef, limit)
	if err != nil {
		return nil, err
	}

	items := make([]domain.RemoteStatus, len(statuses))
	for i, status := range statuses {
		items[i] = toRemoteStatus(status)
	}
	return items, nil
}

func toRemoteStatus(status client.Status) domain.RemoteStatus {
	return domain.RemoteStatus{
		ID:        status.ID,
		Text:      status.Text,
		CreatedAt: status.CreatedAt,
	}
}

var _ usecase.FeedGateway = (*FeedGateway)(nil)
