package numtheory

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"golang.org/x/sync/errgroup"
)

// DefaultRounds bounds the false-positive rate of a generated prime by 4^-20.
const DefaultRounds = 20

// DigitRange is an inclusive range of decimal digit counts.
type DigitRange struct {
	Min int
	Max int
}

// Validate checks that the range is non-empty and positive.
func (r DigitRange) Validate() error {
	if r.Min < 1 || r.Max < r.Min {
		return fmt.Errorf("%w: [%d, %d]", biguint.ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// PrimeGenerator draws random candidates and keeps the first one that passes
// IsProbablyPrime. The zero value uses crypto/rand, DefaultRounds and one worker.
type PrimeGenerator struct {
	// Rand is the randomness source for candidates and witnesses.
	// With more than one worker it must be safe for concurrent use.
	Rand io.Reader
	// Rounds is the number of Miller-Rabin rounds per candidate.
	Rounds int
	// Workers is the number of candidates searched concurrently.
	Workers int
}

func (g *PrimeGenerator) rand() io.Reader {
	if g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}

func (g *PrimeGenerator) rounds() int {
	if g.Rounds < 1 {
		return DefaultRounds
	}
	return g.Rounds
}

// Generate returns a probable prime with a decimal digit count drawn from digits.
// The search has no attempt limit; it stops only on success, on a failing
// randomness source or when ctx is done.
func (g *PrimeGenerator) Generate(ctx context.Context, digits DigitRange) (biguint.BigUint, error) {
	if err := digits.Validate(); err != nil {
		return biguint.Zero(), err
	}
	if g.Workers <= 1 {
		return g.search(ctx, digits)
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan biguint.BigUint, g.Workers)
	group, groupCtx := errgroup.WithContext(searchCtx)
	for i := 0; i < g.Workers; i++ {
		group.Go(func() error {
			p, err := g.search(groupCtx, digits)
			if err != nil {
				return err
			}
			found <- p
			cancel()
			return nil
		})
	}
	err := group.Wait()

	select {
	case p := <-found:
		return p, nil
	default:
		return biguint.Zero(), err
	}
}

func (g *PrimeGenerator) search(ctx context.Context, digits DigitRange) (biguint.BigUint, error) {
	for {
		if err := ctx.Err(); err != nil {
			return biguint.Zero(), fmt.Errorf("prime search aborted: %w", err)
		}

		candidate, err := biguint.RandomDigits(g.rand(), digits.Min, digits.Max)
		if err != nil {
			return biguint.Zero(), fmt.Errorf("failed to draw prime candidate: %w", err)
		}
		// Even candidates are never prime past 2; an even last digit stays within the digit count.
		if !candidate.IsOdd() {
			candidate = candidate.Add(biguint.One())
		}

		ok, err := IsProbablyPrime(candidate, g.rounds(), g.rand())
		if err != nil {
			return biguint.Zero(), err
		}
		if ok {
			return candidate, nil
		}
	}
}
