package rateservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/GlebRadaev/remittance/internal/domain"
	"github.com/GlebRadaev/remittance/internal/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=rateservice.go -destination=mock_rateservice.go -package=rateservice

type PairRepo interface {
	FindPair(ctx context.Context, pairID int) (*domain.CurrencyPair, error)
	FindPairBySymbol(ctx context.Context, base, quote string) (*domain.CurrencyPair, error)
	FindActiveBySource(ctx context.Context, source domain.RateSource) ([]domain.CurrencyPair, error)
}

type QuoteRepo interface {
	LatestQuote(ctx context.Context, pairID int) (*domain.RateQuote, error)
	SaveQuote(ctx context.Context, quote *domain.RateQuote) error
}

// Source reports the raw market rate for base->quote.
type Source interface {
	FetchRate(ctx context.Context, base, quote string) (domain.MarketRate, error)
}

// Sources holds one strategy per known rate source identifier.
type Sources struct {
	FixedPoint   Source
	PeriodicPoll Source
	DirectQuote  Source
}

func (s Sources) pick(id domain.RateSource) (Source, error) {
	var src Source
	switch id {
	case domain.SourceFixedPoint:
		src = s.FixedPoint
	case domain.SourcePeriodicPoll:
		src = s.PeriodicPoll
	case domain.SourceDirectQuote:
		src = s.DirectQuote
	default:
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrNoSourceConfigured, id)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: source %q is not set up", domain.ErrNoSourceConfigured, id)
	}
	return src, nil
}

const refreshConcurrency = 4

type Service struct {
	pairs    PairRepo
	quotes   QuoteRepo
	sources  Sources
	quoteTTL time.Duration
	usdCode  string
	group    singleflight.Group
	now      func() time.Time
}

// New builds the resolver. Stored quotes of non-polled sources are reused for
// quoteTTL; periodic-poll quotes are reused regardless of age.
func New(pairs PairRepo, quotes QuoteRepo, sources Sources, quoteTTL time.Duration, usdCode string) *Service {
	return &Service{
		pairs:    pairs,
		quotes:   quotes,
		sources:  sources,
		quoteTTL: quoteTTL,
		usdCode:  usdCode,
		now:      time.Now,
	}
}

func (s *Service) FindPair(ctx context.Context, pairID int) (*domain.CurrencyPair, error) {
	pair, err := s.pairs.FindPair(ctx, pairID)
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: pair %d", domain.ErrNotFound, pairID)
	}
	return pair, nil
}

// Resolve returns the bid for tier. Fixed-rate pairs never reach a source.
func (s *Service) Resolve(ctx context.Context, pair *domain.CurrencyPair, tier domain.Tier) (res domain.RateResolution, err error) {
	if !tier.Valid() {
		return res, fmt.Errorf("%w: unknown tier %q", domain.ErrValidation, tier)
	}

	if pair.HasFixedRate {
		fixed := pair.FixedRate(tier)
		if !fixed.Valid {
			return res, fmt.Errorf("%w: pair %s has no fixed %s rate", domain.ErrNoSourceConfigured, pair.Symbol(), tier)
		}
		return domain.RateResolution{Bid: fixed.Decimal, QuotedAt: pair.UpdatedAt}, nil
	}

	defer func() {
		metrics.ObserveRate(pair.APISource, err)
	}()

	quote, err := s.currentQuote(ctx, pair)
	if err != nil {
		return res, err
	}
	return domain.RateResolution{
		BaseRate: decimal.NewNullDecimal(quote.BaseRate),
		Bid:      quote.Bid(tier),
		QuotedAt: quote.CreatedAt,
	}, nil
}

// ValidateRate reports whether proposed lies within one minimum pip of the tier
// bid. Both bounds are accepted.
func (s *Service) ValidateRate(ctx context.Context, pair *domain.CurrencyPair, proposed decimal.Decimal, tier domain.Tier) (bool, error) {
	res, err := s.Resolve(ctx, pair, tier)
	if err != nil {
		return false, err
	}
	lower := res.Bid.Sub(pair.MinPipValue)
	upper := res.Bid.Add(pair.MinPipValue)
	return !(proposed.LessThan(lower) || proposed.GreaterThan(upper)), nil
}

// USDRate converts one unit of currency into USD using the market rate of the
// currency/USD pair, or the inverse of USD/currency.
func (s *Service) USDRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	if currency == s.usdCode {
		return decimal.NewFromInt(1), nil
	}

	pair, err := s.pairs.FindPairBySymbol(ctx, currency, s.usdCode)
	if err != nil {
		return decimal.Zero, err
	}
	inverse := false
	if pair == nil {
		inverse = true
		if pair, err = s.pairs.FindPairBySymbol(ctx, s.usdCode, currency); err != nil {
			return decimal.Zero, err
		}
	}
	if pair == nil {
		return decimal.Zero, fmt.Errorf("%w: no %s pair for %s", domain.ErrNoSourceConfigured, s.usdCode, currency)
	}

	res, err := s.Resolve(ctx, pair, domain.TierPersonal)
	if err != nil {
		return decimal.Zero, err
	}
	rate := res.Bid
	if res.BaseRate.Valid {
		rate = res.BaseRate.Decimal
	}
	if inverse {
		if rate.IsZero() {
			return decimal.Zero, fmt.Errorf("%w: zero rate for %s", domain.ErrNoResult, pair.Symbol())
		}
		rate = decimal.NewFromInt(1).DivRound(rate, 8)
	}
	return rate, nil
}

// RefreshPolled fetches and stores a fresh quote for every active pair on the
// periodic-poll source. One failing pair does not stop the others.
func (s *Service) RefreshPolled(ctx context.Context) error {
	pairs, err := s.pairs.FindActiveBySource(ctx, domain.SourcePeriodicPoll)
	if err != nil {
		return err
	}

	var (
		mu     sync.Mutex
		failed []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)
	for i := range pairs {
		pair := &pairs[i]
		g.Go(func() error {
			if _, err := s.fetchAndStore(gctx, pair); err != nil {
				zap.L().Warn("failed to refresh quote", zap.String("pair", pair.Symbol()), zap.Error(err))
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("quotes refreshed", zap.Int("pairs", len(pairs)), zap.Int("failed", len(failed)))
	return errors.Join(failed...)
}

func (s *Service) currentQuote(ctx context.Context, pair *domain.CurrencyPair) (*domain.RateQuote, error) {
	if _, err := s.sources.pick(pair.APISource); err != nil {
		return nil, err
	}

	latest, err := s.quotes.LatestQuote(ctx, pair.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil && s.reusable(pair, latest) {
		return latest, nil
	}

	// The shared fetch outlives any single caller; the http client timeout
	// bounds it. Each caller stops waiting when its own ctx is done.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.Itoa(pair.ID), func() (any, error) {
		return s.fetchAndStore(fetchCtx, pair)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RateQuote), nil
	}
}

func (s *Service) reusable(pair *domain.CurrencyPair, quote *domain.RateQuote) bool {
	if pair.APISource == domain.SourcePeriodicPoll {
		return true
	}
	return s.quoteTTL > 0 && s.now().Sub(quote.CreatedAt) < s.quoteTTL
}

func (s *Service) fetchAndStore(ctx context.Context, pair *domain.CurrencyPair) (*domain.RateQuote, error) {
	src, err := s.sources.pick(pair.APISource)
	if err != nil {
		return nil, err
	}

	if err := checkOffsetMode(pair); err != nil {
		return nil, err
	}

	market, err := src.FetchRate(ctx, pair.Base, pair.Quote)
	if err != nil {
		if errors.Is(err, domain.ErrNoResult) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrNoResult, pair.Symbol(), err)
	}
	if !market.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: %s: non-positive rate %s", domain.ErrNoResult, pair.Symbol(), market.Rate)
	}

	quote, err := buildQuote(pair, market.Rate, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.quotes.SaveQuote(ctx, &quote); err != nil {
		return nil, err
	}
	zap.L().Debug("quote stored", zap.String("pair", pair.Symbol()), zap.String("rate", market.Rate.String()))
	return &quote, nil
}

func buildQuote(pair *domain.CurrencyPair, base decimal.Decimal, at time.Time) (domain.RateQuote, error) {
	quote := domain.RateQuote{PairID: pair.ID, BaseRate: base, CreatedAt: at}
	for tier, dst := range map[domain.Tier]*decimal.Decimal{
		domain.TierPersonal:  &quote.BidPersonal,
		domain.TierCorporate: &quote.BidCorporate,
		domain.TierImports:   &quote.BidImports,
	} {
		rate, err := bid(pair, base, tier)
		if err != nil {
			return domain.RateQuote{}, err
		}
		*dst = rate
	}
	return quote, nil
}

var hundred = decimal.NewFromInt(100)

func checkOffsetMode(pair *domain.CurrencyPair) error {
	switch pair.OffsetBy {
	case domain.OffsetPoint, domain.OffsetPercentage:
		return nil
	}
	return fmt.Errorf("%w: pair %s has unknown offset mode %q", domain.ErrNoSourceConfigured, pair.Symbol(), pair.OffsetBy)
}

func bid(pair *domain.CurrencyPair, base decimal.Decimal, tier domain.Tier) (decimal.Decimal, error) {
	offset := pair.Offset(tier)
	var rate decimal.Decimal
	switch pair.OffsetBy {
	case domain.OffsetPercentage:
		rate = base.Mul(decimal.NewFromInt(1).Add(offset.Div(hundred)))
	case domain.OffsetPoint:
		rate = base.Add(offset.Mul(pair.MinPipValue))
	default:
		return decimal.Zero, checkOffsetMode(pair)
	}
	return rate.Round(pair.Decimals), nil
}
