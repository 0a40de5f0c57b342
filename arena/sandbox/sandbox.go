// Package sandbox isolates agent decisions from the engine: a panicking,
// stalling or memory-hungry Decide call costs the agent its turn (or its
// seat), never the hand.
package sandbox

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"holdem-arena/arena/agent"
	"holdem-arena/arena/engine"
)

// Verdict classifies how a single Decide call went.
type Verdict int

const (
	OK Verdict = iota
	TimedOut
	MemoryExceeded
	Crashed
)

func (v Verdict) String() string {
	switch v {
	case OK:
		return "ok"
	case TimedOut:
		return "timed_out"
	case MemoryExceeded:
		return "memory_exceeded"
	case Crashed:
		return "crashed"
	}
	return "unknown"
}

// Result is the outcome of one supervised call: the action to apply plus
// the verdict that produced it.
type Result struct {
	Action  engine.Action
	Verdict Verdict
}

const (
	defaultTimeout  = 3 * time.Second
	defaultMemLimit = 1 << 30 // 1 GiB
	memSampleEvery  = 5 * time.Millisecond
)

// Options tunes the supervisor. Zero values fall back to the defaults
// above; Clock exists so tests can drive the deadline synthetically.
type Options struct {
	Timeout  time.Duration
	MemLimit uint64
	Clock    quartz.Clock
	Rand     *rand.Rand
	Logger   zerolog.Logger
}

type Sandbox struct {
	timeout  time.Duration
	memLimit uint64
	clock    quartz.Clock
	rng      *rand.Rand
	log      zerolog.Logger
}

func New(opts Options) *Sandbox {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MemLimit == 0 {
		opts.MemLimit = defaultMemLimit
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sandbox{
		timeout:  opts.Timeout,
		memLimit: opts.MemLimit,
		clock:    opts.Clock,
		rng:      opts.Rand,
		log:      opts.Logger,
	}
}

// Invoke runs one Decide call under supervision. The agent goroutine is
// abandoned, not killed, once a limit trips; its eventual result is
// discarded. Invoke is meant to be called from a single goroutine per
// Sandbox.
func (sb *Sandbox) Invoke(ctx context.Context, ag agent.Agent, view engine.PlayerView) Result {
	done := make(chan engine.Action, 1)
	crashed := make(chan any, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crashed <- r
			}
		}()
		done <- ag.Decide(view)
	}()

	timedOut := make(chan struct{})
	timer := sb.clock.AfterFunc(sb.timeout, func() { close(timedOut) })
	defer timer.Stop()

	memHit := make(chan struct{})
	memStop := make(chan struct{})
	defer close(memStop)
	go sb.watchHeap(memHit, memStop)

	select {
	case act := <-done:
		return Result{Action: act, Verdict: OK}
	case r := <-crashed:
		sb.log.Warn().Str("agent", ag.Name()).Any("panic", r).Msg("agent crashed")
		return Result{Action: engine.Action{Kind: engine.Fold}, Verdict: Crashed}
	case <-memHit:
		sb.log.Warn().Str("agent", ag.Name()).Uint64("limit", sb.memLimit).Msg("agent exceeded memory ceiling")
		return Result{Action: engine.Action{Kind: engine.Fold}, Verdict: MemoryExceeded}
	case <-timedOut:
		act := sb.randomAction(view.Stack)
		sb.log.Warn().
			Str("agent", ag.Name()).
			Str("substituted", act.Kind.String()).
			Msg("agent timed out")
		return Result{Action: act, Verdict: TimedOut}
	case <-ctx.Done():
		act := sb.randomAction(view.Stack)
		return Result{Action: act, Verdict: TimedOut}
	}
}

// watchHeap samples heap growth against a baseline taken at call start.
// Sampling uses a real ticker regardless of the injected clock: the heap
// only moves in real time.
func (sb *Sandbox) watchHeap(hit chan<- struct{}, stop <-chan struct{}) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	baseline := ms.HeapAlloc

	tick := time.NewTicker(memSampleEvery)
	defer tick.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			runtime.ReadMemStats(&ms)
			if ms.HeapAlloc > baseline && ms.HeapAlloc-baseline > sb.memLimit {
				close(hit)
				return
			}
		}
	}
}

// randomAction substitutes for a seat that missed its deadline: uniform
// over the three kinds, raise amounts uniform over the stack.
func (sb *Sandbox) randomAction(stack int) engine.Action {
	switch sb.rng.Intn(3) {
	case 0:
		return engine.Action{Kind: engine.Fold}
	case 1:
		return engine.Action{Kind: engine.CheckCall}
	default:
		amt := 0
		if stack > 0 {
			amt = sb.rng.Intn(stack + 1)
		}
		return engine.Action{Kind: engine.Raise, Amount: amt}
	}
}

// Source adapts a seated roster to the engine's decision interface,
// translating verdicts into table consequences. Memory abuse forfeits the
// seat; a crash or timeout costs only the action.
func (sb *Sandbox) Source(roster []agent.Agent) engine.ActionSource {
	return &rosterSource{sb: sb, roster: roster}
}

type rosterSource struct {
	sb     *Sandbox
	roster []agent.Agent
}

func (rs *rosterSource) Act(ctx context.Context, seatIdx int, view engine.PlayerView) engine.SeatDecision {
	res := rs.sb.Invoke(ctx, rs.roster[seatIdx], view)
	return engine.SeatDecision{
		Action:     res.Action,
		Disqualify: res.Verdict == MemoryExceeded,
	}
}
