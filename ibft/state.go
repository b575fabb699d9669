// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ibft

import (
	"fmt"
	"time"

	"github.com/luxfi/bftcore/evidence"
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/internal/clock"
	"github.com/luxfi/bftcore/internal/log"
	"github.com/luxfi/bftcore/internal/utils/bag"
	"github.com/luxfi/bftcore/primitives"
	"go.uber.org/zap"
)

// Phase is one of the five states of §4.3's per-(height,round) machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseProposing
	PhaseAwaitingProposal
	PhasePreparedWaiting
	PhaseCommittedWaiting
	PhaseFinalized
)

func (p Phase) String() string {
	switch p {
	case PhaseProposing:
		return "proposing"
	case PhaseAwaitingProposal:
		return "awaiting_proposal"
	case PhasePreparedWaiting:
		return "prepared_waiting"
	case PhaseCommittedWaiting:
		return "committed_waiting"
	case PhaseFinalized:
		return "finalized"
	default:
		return "idle"
	}
}

// Config is the engine's boot-time parameter set, threaded explicitly
// into NewEngine rather than read from a global, per §9's design note
// against configuration singletons.
type Config struct {
	SelfIndex      uint32
	InitialTimeout time.Duration
	TimeoutCap     time.Duration
}

// FinalResult is the output of a finalised height: the sealed header
// and its aggregate commit.
type FinalResult struct {
	Header header.Header
	Commit Commit
}

// Engine drives the IBFT state machine for a single height+round at a
// time. It is the single writer for that height's message buffers;
// callers (a Driver) own the network/timer suspension points and feed
// this engine synchronous Handle* calls, per §5's concurrency model.
type Engine struct {
	cfg    Config
	hasher *primitives.Hasher
	dir    *header.Directory
	clk    clock.Clock
	logger log.Logger

	blsSecret []byte
	vrfKey    primitives.VRFKeyPair

	timer        *Timer
	equivocation *EquivocationTracker

	height uint64
	round  uint64
	phase  Phase

	proposed     *header.Header
	proposedHash [32]byte

	prepares map[uint32][32]byte    // signer -> header hash they PREPAREd
	commits  map[uint32]CommitMsg   // signer -> COMMIT
	rchanges map[uint32]uint64      // signer -> requested round

	pipeline *pipelineState
}

// pipelineState holds a not-yet-finalised proposal for height+1,
// built speculatively while height is in Committed-Waiting (§4.3
// "Pipelining"). Its COMMIT is withheld until height's commit lands.
type pipelineState struct {
	height   uint64
	header   header.Header
	hash     [32]byte
}

// NewEngine constructs an engine for a validator. blsSecret signs
// COMMITs; vrfKey proves leader eligibility and PoH seeds elsewhere.
func NewEngine(cfg Config, hasher *primitives.Hasher, dir *header.Directory, clk clock.Clock, logger log.Logger, blsSecret []byte, vrfKey primitives.VRFKeyPair) *Engine {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Engine{
		cfg:          cfg,
		hasher:       hasher,
		dir:          dir,
		clk:          clk,
		logger:       logger,
		blsSecret:    blsSecret,
		vrfKey:       vrfKey,
		timer:        NewTimer(cfg.InitialTimeout, cfg.TimeoutCap),
		equivocation: NewEquivocationTracker(),
		prepares:     make(map[uint32][32]byte),
		commits:      make(map[uint32]CommitMsg),
		rchanges:     make(map[uint32]uint64),
	}
}

// Height and Round report the engine's current position.
func (e *Engine) Height() uint64 { return e.height }
func (e *Engine) Round() uint64  { return e.round }
func (e *Engine) Phase() Phase   { return e.phase }

// quorum returns 2f+1 over the currently active validator set.
func (e *Engine) quorum() int {
	return e.dir.ActiveSet().QuorumSize()
}

func (e *Engine) validatorCount() int {
	return len(e.dir.ActiveSet().Entries)
}

// StartHeight resets the engine onto a fresh height at round 0 and
// determines whether this validator is the leader, per §4.3's
// Idle transition. candidateHeader is supplied by the caller when this
// validator believes itself eligible to lead (built from mempool/tick
// state); it is only used if the leader check succeeds.
func (e *Engine) StartHeight(height uint64, prevHeader header.Header, candidateHeader *header.Header) []Message {
	e.height = height
	e.round = 0
	e.prepares = make(map[uint32][32]byte)
	e.commits = make(map[uint32]CommitMsg)
	e.rchanges = make(map[uint32]uint64)
	e.proposed = nil
	e.timer.Reset()
	e.timer.Arm(e.clk.Now())

	_, isLeader := ComputeLeaderClaim(e.vrfKey, e.cfg.SelfIndex, e.validatorCount(), height, 0)
	if isLeader && candidateHeader != nil {
		e.phase = PhaseProposing
		msgs, err := e.ProposeForCurrentRound(*candidateHeader, prevHeader)
		if err != nil {
			e.logger.Warn("lost leader eligibility between check and propose", zap.Error(err))
			e.phase = PhaseAwaitingProposal
			return nil
		}
		e.logger.Debug("proposing header", zap.Uint64("height", height))
		return msgs
	}
	e.phase = PhaseAwaitingProposal
	return nil
}

// ProposeForCurrentRound builds and broadcasts a PRE-PREPARE (plus
// this validator's own PREPARE) for the engine's current (height,
// round), used both by StartHeight's initial proposal and by the
// Driver after a ROUND-CHANGE promotes this validator to the new
// round's leader. Requires phase == PhaseProposing.
func (e *Engine) ProposeForCurrentRound(candidate header.Header, prevHeader header.Header) ([]Message, error) {
	if e.phase != PhaseProposing {
		return nil, fmt.Errorf("ibft: propose called outside proposing phase (got %s)", e.phase)
	}
	claim, isLeader := ComputeLeaderClaim(e.vrfKey, e.cfg.SelfIndex, e.validatorCount(), e.height, e.round)
	if !isLeader {
		return nil, fmt.Errorf("ibft: lost leader eligibility for height=%d round=%d", e.height, e.round)
	}
	h := candidate
	h.Height = e.height
	h.Round = e.round
	h.Previous = prevHeader.Hash(e.hasher)
	h.ValidatorSetHash = e.dir.ActiveRoot(e.height)
	e.proposed = &h
	e.proposedHash = h.Hash(e.hasher)
	e.phase = PhasePreparedWaiting
	return []Message{
		{Kind: KindPrePrepare, Signer: e.cfg.SelfIndex, PrePrepare: &PrePrepare{Height: e.height, Round: e.round, Header: h, Claim: claim}},
		{Kind: KindPrepare, Signer: e.cfg.SelfIndex, Prepare: &Prepare{Height: e.height, Round: e.round, HeaderHash: e.proposedHash}},
	}, nil
}

// HandlePrePrepare processes an inbound PRE-PREPARE. A PRE-PREPARE
// from a non-leader is dropped silently (§4.3 failure semantics).
func (e *Engine) HandlePrePrepare(signer uint32, msg PrePrepare) ([]Message, error) {
	if msg.Height != e.height || msg.Round != e.round {
		return nil, nil // stale or future; ignored, not an error
	}
	if e.phase != PhaseAwaitingProposal {
		return nil, nil
	}
	entry, known := e.dir.ActiveSet().ByIndex(signer)
	if !known {
		return nil, fmt.Errorf("ibft: pre-prepare from unknown validator %d", signer)
	}
	n := e.validatorCount()
	if msg.Claim.Index != signer || !VerifyLeaderClaim(entry.VRFPublicKey, n, msg.Height, msg.Round, msg.Claim) {
		return nil, fmt.Errorf("ibft: pre-prepare from non-leader %d", signer)
	}
	hash := msg.Header.Hash(e.hasher)
	e.proposed = &msg.Header
	e.proposedHash = hash
	e.phase = PhasePreparedWaiting
	return []Message{{Kind: KindPrepare, Signer: e.cfg.SelfIndex, Prepare: &Prepare{Height: msg.Height, Round: msg.Round, HeaderHash: hash}}}, nil
}

// HandlePrepare records a PREPARE vote and, once 2f+1 distinct
// validators have PREPAREd the same header hash, broadcasts COMMIT.
func (e *Engine) HandlePrepare(signer uint32, msg Prepare) ([]Message, error) {
	if msg.Height != e.height || msg.Round != e.round {
		return nil, nil
	}
	if e.phase != PhasePreparedWaiting {
		return nil, nil
	}
	if _, known := e.dir.ActiveSet().ByIndex(signer); !known {
		return nil, fmt.Errorf("ibft: prepare from unknown validator %d", signer)
	}
	e.prepares[signer] = msg.HeaderHash

	tally := bag.New[[32]byte]()
	for _, h := range e.prepares {
		tally.Add(h)
	}
	if tally.Count(msg.HeaderHash) < e.quorum() {
		return nil, nil
	}
	if e.proposed == nil || e.proposedHash != msg.HeaderHash {
		return nil, nil
	}

	sig, err := primitives.BLSSign(e.blsSecret, msg.HeaderHash[:])
	if err != nil {
		return nil, fmt.Errorf("ibft: sign commit: %w", err)
	}
	commitMsg := CommitMsg{Height: e.height, Round: e.round, HeaderHash: msg.HeaderHash, Signature: sig}
	e.phase = PhaseCommittedWaiting
	return []Message{{Kind: KindCommit, Signer: e.cfg.SelfIndex, Commit: &commitMsg}}, nil
}

// HandleCommit records a COMMIT vote, checks it for equivocation, and
// once 2f+1 distinct validators have committed the same header hash,
// aggregates the signatures into a FinalResult.
func (e *Engine) HandleCommit(signer uint32, msg CommitMsg) ([]Message, *FinalResult, []evidence.Record, error) {
	var evidenceOut []evidence.Record
	rec, equivocated := e.equivocation.Observe(signer, msg)
	if equivocated {
		evidenceOut = append(evidenceOut, rec)
		// Equivocation is reported, not retried; the contradicting
		// message is still dropped from this round's tally below.
	}
	if msg.Height != e.height || msg.Round != e.round {
		return nil, nil, evidenceOut, nil
	}
	if e.phase != PhaseCommittedWaiting {
		// Already finalized (or not yet through PREPARE quorum) — the
		// equivocation check above still ran, but there is nothing left
		// to tally.
		return nil, nil, evidenceOut, nil
	}
	entry, known := e.dir.ActiveSet().ByIndex(signer)
	if !known {
		return nil, nil, evidenceOut, fmt.Errorf("ibft: commit from unknown validator %d", signer)
	}
	if !primitives.BLSVerify(entry.BLSPublicKey, msg.HeaderHash[:], msg.Signature) {
		return nil, nil, evidenceOut, fmt.Errorf("ibft: commit from %d failed bls verify", signer)
	}
	if equivocated {
		return nil, nil, evidenceOut, nil
	}
	e.commits[signer] = msg

	matching := make(map[uint32]CommitMsg)
	for idx, c := range e.commits {
		if c.HeaderHash == msg.HeaderHash {
			matching[idx] = c
		}
	}
	if len(matching) < e.quorum() {
		return nil, nil, evidenceOut, nil
	}
	if e.proposed == nil || e.proposedHash != msg.HeaderHash {
		return nil, nil, evidenceOut, nil
	}

	var sigs [][]byte
	bitmap := NewBitmap(e.validatorCount())
	for idx, c := range matching {
		sigs = append(sigs, c.Signature)
		bitmap.Set(idx)
	}
	agg, err := primitives.BLSAggregate(sigs)
	if err != nil {
		return nil, nil, evidenceOut, fmt.Errorf("ibft: aggregate commits: %w", err)
	}
	result := &FinalResult{
		Header: *e.proposed,
		Commit: Commit{HeaderHash: msg.HeaderHash, Signature: agg, Bitmap: bitmap},
	}
	e.phase = PhaseFinalized
	e.equivocation.Forget(e.height)
	return nil, result, evidenceOut, nil
}

// CheckTimeout evaluates the round timer against now and, if expired,
// broadcasts ROUND-CHANGE and doubles the schedule. It is safe to call
// every tick; it is a no-op before the deadline.
func (e *Engine) CheckTimeout(now uint64) []Message {
	if e.phase == PhaseFinalized {
		return nil
	}
	if !e.timer.Expired(now) {
		return nil
	}
	e.timer.Double()
	return []Message{{Kind: KindRoundChange, Signer: e.cfg.SelfIndex, RoundChange: &RoundChange{Height: e.height, Round: e.round + 1}}}
}

// HandleRoundChange tallies ROUND-CHANGE votes and advances the round
// once 2f+1 distinct validators request the same target round.
func (e *Engine) HandleRoundChange(signer uint32, msg RoundChange) []Message {
	if msg.Height != e.height {
		return nil
	}
	if _, known := e.dir.ActiveSet().ByIndex(signer); !known {
		return nil
	}
	e.rchanges[signer] = msg.Round

	tally := bag.New[uint64]()
	for _, r := range e.rchanges {
		tally.Add(r)
	}
	if tally.Count(msg.Round) < e.quorum() || msg.Round <= e.round {
		return nil
	}
	e.round = msg.Round
	e.phase = PhaseAwaitingProposal
	e.prepares = make(map[uint32][32]byte)
	e.commits = make(map[uint32]CommitMsg)
	e.proposed = nil
	e.timer.Arm(e.clk.Now())

	if _, isLeader := ComputeLeaderClaim(e.vrfKey, e.cfg.SelfIndex, e.validatorCount(), e.height, e.round); isLeader {
		// Driver must follow up with ProposeForCurrentRound once it
		// observes this phase transition.
		e.phase = PhaseProposing
	}
	return nil
}

// StartPipelinedProposal speculatively proposes height+1 while height
// is still in Committed-Waiting (§4.3 "Pipelining"). The returned
// PRE-PREPARE should be broadcast immediately; its own COMMIT must be
// withheld by the Driver until height's FinalResult is observed.
func (e *Engine) StartPipelinedProposal(nextHeight uint64, candidate header.Header) (*Message, bool) {
	if e.phase != PhaseCommittedWaiting || e.proposed == nil {
		return nil, false
	}
	claim, isLeader := ComputeLeaderClaim(e.vrfKey, e.cfg.SelfIndex, e.validatorCount(), nextHeight, 0)
	if !isLeader {
		return nil, false
	}
	candidate.Height = nextHeight
	candidate.Round = 0
	candidate.Previous = e.proposedHash
	candidate.ValidatorSetHash = e.dir.ActiveRoot(nextHeight)
	hash := candidate.Hash(e.hasher)
	e.pipeline = &pipelineState{height: nextHeight, header: candidate, hash: hash}
	return &Message{Kind: KindPrePrepare, Signer: e.cfg.SelfIndex, PrePrepare: &PrePrepare{Height: nextHeight, Round: 0, Header: candidate, Claim: claim}}, true
}

// AbortPipeline discards a speculative h+1 proposal, called when
// height failed to finalise and §4.3 requires "a full restart of h+1".
func (e *Engine) AbortPipeline() {
	e.pipeline = nil
}

// PipelinedProposal returns the in-flight speculative proposal, if any.
func (e *Engine) PipelinedProposal() (header.Header, bool) {
	if e.pipeline == nil {
		return header.Header{}, false
	}
	return e.pipeline.header, true
}
