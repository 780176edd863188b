package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/Siddarth2230/base62/internal/models"
	"github.com/Siddarth2230/base62/internal/repository"
	"github.com/Siddarth2230/base62/pkg/base62"
	"github.com/Siddarth2230/base62/pkg/cache"
	"github.com/Siddarth2230/base62/pkg/idgen"
	"github.com/Siddarth2230/base62/pkg/metrics"
)

var (
	ErrNotFound       = errors.New("code not found")
	ErrLedgerDisabled = errors.New("issued-id ledger is not configured")
	ErrGenExhausted   = errors.New("failed to generate unique code after retries")
)

// Ledger records issued codes. *repository.IDRepository implements it.
type Ledger interface {
	Save(ctx context.Context, rec *models.IssuedID) error
	FindByCode(ctx context.Context, code string) (*models.IssuedID, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	DeleteByCode(ctx context.Context, code string) error
}

// SharedCache is the optional second-level decode memo. *cache.RedisCache implements it.
type SharedCache interface {
	Get(ctx context.Context, code string) (string, error)
	Set(ctx context.Context, code, value string) error
	Delete(ctx context.Context, code string) error
}

// CodecService exposes the base62 codec together with ID issuance.
type CodecService struct {
	generator idgen.Generator
	hasher    *idgen.HashGenerator
	ledger    Ledger      // may be nil
	l2        SharedCache // may be nil
	cache     *cache.LRUCache
	logger    *log.Logger
}

type Options struct {
	Generator idgen.Generator
	Ledger    Ledger
	L2        SharedCache
	CacheSize int
	Logger    *log.Logger
}

func NewCodecService(opts Options) (*CodecService, error) {
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}
	hasher, err := idgen.NewHashGenerator(32)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &CodecService{
		generator: opts.Generator,
		hasher:    hasher,
		ledger:    opts.Ledger,
		l2:        opts.L2,
		cache:     cache.NewLRUCache(opts.CacheSize),
		logger:    logger,
	}, nil
}

// Encode converts a decimal integer string to its base62 code.
func (s *CodecService) Encode(ctx context.Context, value string) (string, error) {
	code, err := base62.EncodeString(value)
	metrics.CodecOperations.WithLabelValues("encode", metrics.Result(err)).Inc()
	return code, err
}

// Decode returns the decimal value of code, consulting the caches first.
// Codec errors are returned unwrapped.
func (s *CodecService) Decode(ctx context.Context, code string) (string, error) {
	cleaned := base62.Clean(code)

	if v, ok := s.cache.Get(cleaned); ok {
		metrics.CodecOperations.WithLabelValues("decode", "ok").Inc()
		return v, nil
	}
	if s.l2 != nil && cleaned != "" {
		v, err := s.l2.Get(ctx, cleaned)
		switch {
		case err == nil:
			s.cache.Put(cleaned, v)
			metrics.CodecOperations.WithLabelValues("decode", "ok").Inc()
			return v, nil
		case !errors.Is(err, cache.ErrCacheMiss):
			s.logger.Warn("l2 cache read failed", "code", cleaned, "err", err)
		}
	}

	n, err := base62.Decode(cleaned)
	metrics.CodecOperations.WithLabelValues("decode", metrics.Result(err)).Inc()
	if err != nil {
		return "", err
	}
	v := n.String()
	s.cache.Put(cleaned, v)
	if s.l2 != nil {
		if err := s.l2.Set(ctx, cleaned, v); err != nil {
			s.logger.Warn("l2 cache write failed", "code", cleaned, "err", err)
		}
	}
	return v, nil
}

// Clean strips invisible characters and reports whether the remainder
// would decode.
func (s *CodecService) Clean(input string) (string, error) {
	err := base62.Valid(input)
	metrics.CodecOperations.WithLabelValues("clean", metrics.Result(err)).Inc()
	return base62.Clean(input), err
}

// Digest returns the base62 form of the full SHA-256 of input.
func (s *CodecService) Digest(input string) string {
	metrics.CodecOperations.WithLabelValues("digest", "ok").Inc()
	return s.hasher.Sum([]byte(input))
}

// Issue generates a new code, records it in the ledger when one is
// configured, and retries when the code was already issued.
func (s *CodecService) Issue(ctx context.Context) (*models.IssuedID, error) {
	const maxAttempts = 5

	for i := 0; i < maxAttempts; i++ {
		code, err := s.generator.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		value, err := base62.Decode(code)
		if err != nil {
			// generators only emit Charset
			return nil, fmt.Errorf("generator %s produced %q: %w", s.generator.Name(), code, err)
		}
		rec := &models.IssuedID{
			Code:      code,
			Value:     value.String(),
			Generator: s.generator.Name(),
		}

		if s.ledger == nil {
			metrics.IssuedIDs.WithLabelValues(rec.Generator).Inc()
			return rec, nil
		}

		exists, err := s.ledger.ExistsByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			err = s.ledger.Save(ctx, rec)
			if err == nil {
				metrics.IssuedIDs.WithLabelValues(rec.Generator).Inc()
				return rec, nil
			}
			if !errors.Is(err, repository.ErrDuplicateCode) {
				return nil, err
			}
		}

		metrics.GeneratorCollisions.Inc()
		s.logger.Warn("idgen collision detected", "attempt", i+1, "code", code)
	}
	return nil, ErrGenExhausted
}

// Lookup returns the ledger record for code.
func (s *CodecService) Lookup(ctx context.Context, code string) (*models.IssuedID, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	cleaned := base62.Clean(code)
	if err := base62.Valid(cleaned); err != nil {
		return nil, err
	}
	rec, err := s.ledger.FindByCode(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Revoke deletes code from the ledger and drops it from both caches.
func (s *CodecService) Revoke(ctx context.Context, code string) error {
	if s.ledger == nil {
		return ErrLedgerDisabled
	}
	cleaned := base62.Clean(code)
	if err := s.ledger.DeleteByCode(ctx, cleaned); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return ErrNotFound
		}
		return err
	}

	s.cache.Delete(cleaned)
	if s.l2 != nil {
		if err := s.l2.Delete(ctx, cleaned); err != nil {
			s.logger.Warn("l2 cache delete failed", "code", cleaned, "err", err)
		}
	}
	return nil
}
