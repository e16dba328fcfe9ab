package permission

import (
	"context"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
)

const myPermissionsPath = "/core/my-permissions/"

//go:generate mockgen -source=permission_fetcher.go -destination=mock/permission_fetcher_mock.go -package=mock
type Fetcher interface {
	FetchMine(ctx context.Context) (Snapshot, error)
}

type upstreamFetcher struct {
	api upstream.API
}

func NewUpstreamFetcher(api upstream.API) Fetcher {
	return &upstreamFetcher{api: api}
}

func (f *upstreamFetcher) FetchMine(ctx context.Context) (Snapshot, error) {
	payload, err := upstream.GetJSON[myPermissionsPayload](ctx, f.api, myPermissionsPath, nil)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Permissions: payload.Permissions, Role: payload.Category}, nil
}
