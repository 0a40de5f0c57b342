package main

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"holdem-arena/arena/agent"
	"holdem-arena/arena/engine"
	"holdem-arena/arena/sandbox"
)

// SimResult is one simulation's outcome: the seated subset, the chip
// leader when it ended, and each agent's net chips.
type SimResult struct {
	ID     string
	Roster []string
	Winner string
	Hands  int
	Net    map[string]int
}

// TournamentResult aggregates every simulation plus the ratings computed
// from them.
type TournamentResult struct {
	ID     string
	Sims   []SimResult
	Stats  map[string]*AgentStats
	Glicko map[string]*Glicko2
	Elo    *EloTable
}

type Tournament struct {
	cfg Config
	reg *agent.Registry
	log zerolog.Logger
}

func NewTournament(cfg Config, reg *agent.Registry, log zerolog.Logger) *Tournament {
	return &Tournament{cfg: cfg, reg: reg, log: log}
}

// Run plays the full tournament: rosters larger than SubsetSize get 100
// simulations over random subsets, small rosters get 10 over everyone.
// Simulations run in parallel; rating updates are applied afterwards in a
// deterministic order.
func (t *Tournament) Run(ctx context.Context) (*TournamentResult, error) {
	roster := t.cfg.Agents
	sims := t.cfg.Simulations
	if sims <= 0 {
		if len(roster) > t.cfg.SubsetSize {
			sims = 100
		} else {
			sims = 10
		}
	}

	seeds := newSeedStream(baseSeed(t.cfg.DeckSeed))
	planRng := rand.New(rand.NewSource(int64(seeds.next())))
	type simPlan struct {
		idx   int
		id    string
		names []string
		seed  int64
	}
	plans := make([]simPlan, sims)
	for i := range plans {
		names := roster
		if len(roster) > t.cfg.SubsetSize {
			names = sampleSubset(planRng, roster, t.cfg.SubsetSize)
		}
		plans[i] = simPlan{
			idx:   i,
			id:    ulid.Make().String(),
			names: append([]string(nil), names...),
			seed:  int64(seeds.next()),
		}
	}

	res := &TournamentResult{
		ID:     ulid.Make().String(),
		Stats:  make(map[string]*AgentStats, len(roster)),
		Glicko: make(map[string]*Glicko2, len(roster)),
		Elo:    NewEloTable(24),
	}
	for _, name := range roster {
		res.Stats[name] = &AgentStats{}
		res.Glicko[name] = NewGlicko2()
	}

	t.log.Info().
		Str("tournament", res.ID).
		Int("sims", sims).
		Int("roster", len(roster)).
		Int("parallelism", t.cfg.Parallelism).
		Msg("tournament starting")

	ordered := make([]SimResult, sims)
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Parallelism)
	for _, p := range plans {
		p := p
		g.Go(func() error {
			sr, err := t.runSim(gctx, p.id, p.names, p.seed)
			if err != nil {
				return err
			}
			mu.Lock()
			ordered[p.idx] = sr
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Sims = ordered

	for _, sr := range res.Sims {
		t.applyResult(res, sr)
	}
	t.logStandings(res)
	return res, nil
}

// runSim seats fresh agent instances, then plays hands until one seat has
// all the chips or the hand limit trips.
func (t *Tournament) runSim(ctx context.Context, id string, names []string, seed int64) (SimResult, error) {
	agents, err := t.reg.Build(names)
	if err != nil {
		return SimResult{}, err
	}

	tbl := engine.NewTable()
	for _, ag := range agents {
		tbl.AddSeat(ag.Name(), t.cfg.StartStack)
	}
	src := sandbox.New(sandbox.Options{
		Timeout:  t.cfg.ActionTimeout,
		MemLimit: t.cfg.AgentMemLimit,
		Rand:     rand.New(rand.NewSource(seed)),
		Logger:   t.log.With().Str("sim", id).Logger(),
	}).Source(agents)

	hcfg := engine.Config{
		SmallBlind: t.cfg.SmallBlind,
		BigBlind:   t.cfg.BigBlind,
	}
	deckSeeds := newSeedStream(uint64(seed))
	simLog := t.log.With().Str("sim", id).Logger()

	hands := 0
	for hands < t.cfg.MaxHands && tbl.FundedCount() > 1 {
		deck := engine.NewDeck(int64(deckSeeds.next() | 1))
		h := engine.NewHand(ulid.Make().String(), hcfg, tbl, engine.PHOracle{}, src, deck, simLog)
		if _, err := h.Play(ctx); err != nil {
			if errors.Is(err, engine.ErrNotEnoughPlayers) {
				break
			}
			return SimResult{}, err
		}
		hands++
	}

	winner := ""
	best := -1
	net := make(map[string]int, len(tbl.Seats))
	for _, s := range tbl.Seats {
		net[s.Name] = s.Stack - t.cfg.StartStack
		if s.Stack > best || (s.Stack == best && s.Name < winner) {
			best = s.Stack
			winner = s.Name
		}
	}
	simLog.Info().Str("winner", winner).Int("hands", hands).Msg("simulation finished")
	return SimResult{ID: id, Roster: names, Winner: winner, Hands: hands, Net: net}, nil
}

// applyResult folds one simulation into stats and ratings. Glicko-2 treats
// a simulation as a rating period, scored by pairwise chip comparison
// against start-of-period snapshots.
func (t *Tournament) applyResult(res *TournamentResult, sr SimResult) {
	for _, name := range sr.Roster {
		st := res.Stats[name]
		st.Sims++
		st.HandsPlayed += sr.Hands
		st.NetChips += sr.Net[name]
		if name == sr.Winner {
			st.Wins++
		}
	}

	snaps := make(map[string]*Glicko2, len(sr.Roster))
	for _, name := range sr.Roster {
		snaps[name] = res.Glicko[name].Copy()
	}
	for _, a := range sr.Roster {
		var results []OpponentResult
		for _, b := range sr.Roster {
			if a == b {
				continue
			}
			s := ScoreFromWL(sr.Net[a] > sr.Net[b], sr.Net[a] == sr.Net[b])
			results = append(results, OpponentResult{Opp: snaps[b], S: s})
		}
		res.Glicko[a].UpdateBatch(results, 0.5)
	}

	for i, a := range sr.Roster {
		for _, b := range sr.Roster[i+1:] {
			res.Elo.UpdatePair(a, b, sr.Net[a]-sr.Net[b], t.cfg.BigBlind)
		}
	}
}

func (t *Tournament) logStandings(res *TournamentResult) {
	names := append([]string(nil), t.cfg.Agents...)
	sort.Slice(names, func(i, j int) bool {
		return res.Glicko[names[i]].Rating > res.Glicko[names[j]].Rating
	})
	for rank, name := range names {
		gl := res.Glicko[name]
		st := res.Stats[name]
		winLo, winHi := WilsonCI95(st.Wins, 0, st.Sims)
		t.log.Info().
			Int("rank", rank+1).
			Str("agent", name).
			Float64("glicko", gl.Rating).
			Float64("rd", gl.RD).
			Float64("elo", res.Elo.Rating(name)).
			Float64("win_pct", st.WinPct()).
			Float64("win_lo", winLo).
			Float64("win_hi", winHi).
			Float64("bb_per_100", st.BBPer100(t.cfg.BigBlind)).
			Int("net_chips", st.NetChips).
			Msg("standings")
	}
}

func sampleSubset(rng *rand.Rand, roster []string, k int) []string {
	pool := append([]string(nil), roster...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:k]
}

//
// ===== randomness =====
//

type seedStream struct{ state uint64 }

func newSeedStream(base uint64) seedStream { return seedStream{state: base} }
func (s *seedStream) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return z
}

func baseSeed(fromEnv int64) uint64 {
	if fromEnv != 0 {
		return uint64(fromEnv)
	}
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err == nil {
		return binary.LittleEndian.Uint64(b[:]) ^ uint64(time.Now().UnixNano()) ^ uint64(os.Getpid())
	}
	return uint64(time.Now().UnixNano()) ^ 0xA5A5A5A5A5A5A5A5
}
