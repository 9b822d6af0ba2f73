package usecase

import (
	"time"

	"github.com/secmon-lab/filterschema/pkg/domain/interfaces"
	"github.com/secmon-lab/filterschema/pkg/domain/model/filter"
	"github.com/secmon-lab/filterschema/pkg/i18n"
)

type UseCases struct {
	repo        interfaces.Repository
	rest        interfaces.RESTClient
	tr          i18n.Translator
	cacheTTL    *time.Duration
	concurrency int
	Filter      *FilterUseCase
	ViewState   *ViewStateUseCase
}

type Option func(*UseCases)

func WithREST(rest interfaces.RESTClient) Option {
	return func(uc *UseCases) {
		uc.rest = rest
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.cacheTTL = &ttl
	}
}

func WithConcurrency(n int) Option {
	return func(uc *UseCases) {
		uc.concurrency = n
	}
}

func New(repo interfaces.Repository, registry *filter.Registry, tr i18n.Translator, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		tr:   tr,
	}

	for _, opt := range opts {
		opt(uc)
	}

	var filterOpts []FilterOption
	if uc.cacheTTL != nil {
		filterOpts = append(filterOpts, WithOptionCacheTTL(*uc.cacheTTL))
	}
	filterOpts = append(filterOpts, WithLoadConcurrency(uc.concurrency))

	uc.Filter = NewFilterUseCase(registry, uc.rest, filterOpts...)
	uc.ViewState = NewViewStateUseCase(repo, uc.Filter, uc.tr)

	return uc
}
