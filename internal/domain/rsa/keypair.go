package rsa

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/numtheory"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPublicExponent is the Fermat prime F4.
	DefaultPublicExponent = 65537
	// DefaultMinPrimeDigits and DefaultMaxPrimeDigits bound the decimal length of p and q.
	DefaultMinPrimeDigits = 150
	DefaultMaxPrimeDigits = 151
	// DefaultMaxAttempts bounds how many prime pairs are drawn before an
	// exponent that is never invertible is reported.
	DefaultMaxAttempts = 16
)

// KeyPair holds the two halves of a generated key.
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}

// GenerateOptions configures key pair generation.
type GenerateOptions struct {
	// PublicExponent must be odd and at least 3.
	PublicExponent biguint.BigUint
	// PrimeDigits is the inclusive decimal digit count range of each prime.
	PrimeDigits numtheory.DigitRange
	// Rounds is the number of Miller-Rabin rounds; zero means numtheory.DefaultRounds.
	Rounds int
	// MaxAttempts is the number of prime pairs to try; zero means DefaultMaxAttempts.
	MaxAttempts int
	// Workers above one draws p and q concurrently and spreads each search
	// over the workers. Rand must then be safe for concurrent use.
	Workers int
	// Rand defaults to crypto/rand.
	Rand io.Reader
}

// DefaultGenerateOptions returns exponent 65537 with 150 to 151 digit primes.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		PublicExponent: biguint.FromUint64(DefaultPublicExponent),
		PrimeDigits:    numtheory.DigitRange{Min: DefaultMinPrimeDigits, Max: DefaultMaxPrimeDigits},
		Rounds:         numtheory.DefaultRounds,
		MaxAttempts:    DefaultMaxAttempts,
	}
}

// Validate checks the options for consistency.
func (o GenerateOptions) Validate() error {
	if o.PublicExponent.Cmp(biguint.FromUint64(3)) < 0 || !o.PublicExponent.IsOdd() {
		return fmt.Errorf("%w: public exponent %s must be odd and at least 3", ErrInvalidOptions, o.PublicExponent)
	}
	if err := o.PrimeDigits.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if o.Rounds < 0 || o.MaxAttempts < 0 || o.Workers < 0 {
		return fmt.Errorf("%w: rounds, attempts and workers must not be negative", ErrInvalidOptions)
	}
	return nil
}

func (o GenerateOptions) maxAttempts() int {
	if o.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

// Generate draws two distinct random primes p and q, forms n = p*q and
// lambda = lcm(p-1, q-1) and computes d = e^-1 mod lambda. When e shares a
// factor with lambda a new pair is drawn, up to MaxAttempts times, after which
// ErrExponentNotInvertible is returned. Cancelling ctx aborts the prime search.
func Generate(ctx context.Context, opts GenerateOptions) (*KeyPair, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gen := &numtheory.PrimeGenerator{Rand: opts.Rand, Rounds: opts.Rounds, Workers: max(1, opts.Workers/2)}

	for attempt := 1; attempt <= opts.maxAttempts(); attempt++ {
		p, q, err := drawPrimes(ctx, gen, opts)
		if err != nil {
			return nil, err
		}

		pair, err := assemble(p, q, opts.PublicExponent)
		if errors.Is(err, numtheory.ErrNotInvertible) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return pair, nil
	}

	return nil, fmt.Errorf("%w: no suitable primes in %d attempts", ErrExponentNotInvertible, opts.maxAttempts())
}

// drawPrimes returns two distinct primes, concurrently when workers are configured.
func drawPrimes(ctx context.Context, gen *numtheory.PrimeGenerator, opts GenerateOptions) (biguint.BigUint, biguint.BigUint, error) {
	var p, q biguint.BigUint

	if opts.Workers > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() (err error) {
			p, err = gen.Generate(groupCtx, opts.PrimeDigits)
			return err
		})
		group.Go(func() (err error) {
			q, err = gen.Generate(groupCtx, opts.PrimeDigits)
			return err
		})
		if err := group.Wait(); err != nil {
			return p, q, fmt.Errorf("failed to generate primes: %w", err)
		}
	} else {
		var err error
		if p, err = gen.Generate(ctx, opts.PrimeDigits); err != nil {
			return p, q, fmt.Errorf("failed to generate p: %w", err)
		}
		if q, err = gen.Generate(ctx, opts.PrimeDigits); err != nil {
			return p, q, fmt.Errorf("failed to generate q: %w", err)
		}
	}

	// p == q would make n a square and break decryption.
	for p.Equal(q) {
		var err error
		if q, err = gen.Generate(ctx, opts.PrimeDigits); err != nil {
			return p, q, fmt.Errorf("failed to generate q: %w", err)
		}
	}
	return p, q, nil
}

func assemble(p, q, e biguint.BigUint) (*KeyPair, error) {
	one := biguint.One()
	pMinus1, err := p.Sub(one)
	if err != nil {
		return nil, err
	}
	qMinus1, err := q.Sub(one)
	if err != nil {
		return nil, err
	}
	lambda, err := numtheory.LCM(pMinus1, qMinus1)
	if err != nil {
		return nil, err
	}

	d, err := numtheory.ModInverse(e, lambda)
	if err != nil {
		return nil, err
	}

	private, err := NewPrivateKey(p, q, d)
	if err != nil {
		return nil, err
	}
	public, err := private.Public(e)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: public, Private: private}, nil
}
