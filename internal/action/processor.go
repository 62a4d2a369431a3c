package action

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/vaultsign/internal/clock"
	"github.com/mrz1836/vaultsign/internal/constants"
	"github.com/mrz1836/vaultsign/internal/crypto"
	"github.com/mrz1836/vaultsign/internal/ctxutil"
	vserrors "github.com/mrz1836/vaultsign/internal/errors"
)

// OnError selects what Process does after a failed action.
type OnError string

// Failure policies.
const (
	// OnErrorAbort stops at the first failed action.
	OnErrorAbort OnError = constants.OnErrorAbort
	// OnErrorContinue records the failure in the action's Result and moves on.
	OnErrorContinue OnError = constants.OnErrorContinue
)

// Valid reports whether p is a known policy.
func (p OnError) Valid() bool {
	return p == OnErrorAbort || p == OnErrorContinue
}

// Result is the outcome of one action.
type Result struct {
	Index   int
	Kind    Kind
	Message []byte

	// Signature is the signature produced by a sign action, or the
	// candidate signature a verify action checked.
	Signature []byte

	// Valid is the verification outcome. Always false for sign actions.
	Valid bool

	Duration time.Duration
	Err      error
}

// OK reports whether the round trip completed. An invalid signature is OK.
func (r Result) OK() bool {
	return r.Err == nil
}

// Processor dispatches actions against a signer strictly in order.
type Processor struct {
	signer   crypto.Signer
	keyName  string
	onError  OnError
	timeout  time.Duration
	reporter func(Result)
	clock    clock.Clock
}

// Option configures a Processor.
type Option func(*Processor)

// WithReporter registers fn to receive each Result as soon as it is produced,
// before the next action starts.
func WithReporter(fn func(Result)) Option {
	return func(p *Processor) { p.reporter = fn }
}

// WithOnError sets the failure policy. The default is OnErrorAbort.
func WithOnError(policy OnError) Option {
	return func(p *Processor) { p.onError = policy }
}

// WithActionTimeout bounds each round trip. Zero disables the deadline.
func WithActionTimeout(d time.Duration) Option {
	return func(p *Processor) { p.timeout = d }
}

// WithClock replaces the clock used to measure durations.
func WithClock(c clock.Clock) Option {
	return func(p *Processor) { p.clock = c }
}

// NewProcessor returns a Processor that signs and verifies with keyName.
func NewProcessor(signer crypto.Signer, keyName string, opts ...Option) *Processor {
	p := &Processor{
		signer:  signer,
		keyName: keyName,
		onError: OnErrorAbort,
		clock:   clock.RealClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs actions in order, one round trip each. Action n+1 is not
// started until the result of action n has been reported.
//
// Under OnErrorAbort the first failure ends the run: the results produced so
// far, including the failed one, are returned with its error. Under
// OnErrorContinue every action runs and the returned error joins all
// failures. A canceled context stops the run before the next action with an
// error wrapping errors.ErrOperationCanceled, whatever the policy.
func (p *Processor) Process(ctx context.Context, actions []Action) ([]Result, error) {
	if p.keyName == "" {
		return nil, vserrors.Wrap(vserrors.ErrKeyNameRequired, "process actions")
	}
	if !p.onError.Valid() {
		return nil, vserrors.Wrapf(vserrors.ErrConfigInvalidRun, "unknown failure policy %q", p.onError)
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "processor").Logger()
	results := make([]Result, 0, len(actions))
	var failures []error

	for i, a := range actions {
		if err := ctxutil.Canceled(ctx); err != nil {
			logger.Warn().Int("index", i).Int("remaining", len(actions)-i).Msg("processing stopped")
			return results, errors.Join(append(failures, vserrors.Wrapf(err, "before action %d", i))...)
		}

		res := p.dispatch(ctx, i, a, results)
		results = append(results, res)

		event := logger.Debug()
		if res.Err != nil {
			event = logger.Warn().Err(res.Err)
		}
		event.Int("index", i).
			Str("kind", string(res.Kind)).
			Bool("valid", res.Valid).
			Dur("duration", res.Duration).
			Msg("action processed")

		if p.reporter != nil {
			p.reporter(res)
		}

		if res.Err != nil {
			err := vserrors.Wrapf(res.Err, "action %d (%s)", i, res.Kind)
			if p.onError == OnErrorAbort {
				return results, err
			}
			failures = append(failures, err)
		}
	}

	return results, errors.Join(failures...)
}

// dispatch performs the single round trip for action a at index i.
func (p *Processor) dispatch(ctx context.Context, i int, a Action, done []Result) Result {
	res := Result{Index: i, Kind: a.Kind, Message: a.Message}

	if err := a.Validate(); err != nil {
		res.Err = err
		return res
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := p.clock.Now()
	switch a.Kind {
	case KindSign:
		res.Signature, res.Err = p.signer.Sign(ctx, p.keyName, a.Message)
	case KindVerify:
		sig, err := resolveSignature(i, a, done)
		if err != nil {
			res.Err = err
			return res
		}
		res.Signature = sig
		res.Valid, res.Err = p.signer.Verify(ctx, p.keyName, a.Message, sig)
	}
	res.Duration = clock.Since(p.clock, start)
	return res
}

// resolveSignature returns the candidate signature of a verify action,
// following a reference to an earlier successful sign action when present.
func resolveSignature(i int, a Action, done []Result) ([]byte, error) {
	if a.SignatureRef == nil {
		return a.Signature, nil
	}
	ref := *a.SignatureRef
	if ref < 0 || ref >= i || ref >= len(done) {
		return nil, vserrors.Wrapf(vserrors.ErrInvalidActionRef, "action %d does not precede action %d", ref, i)
	}
	target := done[ref]
	if target.Kind != KindSign {
		return nil, vserrors.Wrapf(vserrors.ErrInvalidActionRef, "action %d is a %s action", ref, target.Kind)
	}
	if target.Err != nil {
		return nil, vserrors.Wrapf(vserrors.ErrInvalidActionRef, "action %d failed", ref)
	}
	return target.Signature, nil
}
