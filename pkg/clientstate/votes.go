package clientstate

import (
	"context"
	"strconv"
)

const (
	// votedKeyPrefix matches the per-model flag keys the site has always
	// written.
	votedKeyPrefix = "afd-voted-model-"

	subscribedKey = "afd-newsletter-subscribed"
)

// VoteGuard enforces at-most-once-per-model voting on the client side. The
// flag is set immediately after the vote is issued, before its outcome is
// known, and is never rolled back: a failed increment leaves local and
// server state desynced. That gap is inherited behavior, kept rather than
// papered over with a guessed reconciliation policy.
type VoteGuard struct {
	kv KV
}

// NewVoteGuard binds the vote flags to a client's KV.
func NewVoteGuard(kv KV) *VoteGuard {
	return &VoteGuard{kv: kv}
}

func votedKey(modelID int) string {
	return votedKeyPrefix + strconv.Itoa(modelID)
}

// HasVoted reports whether this client already voted for the model.
func (g *VoteGuard) HasVoted(ctx context.Context, modelID int) bool {
	_, err := g.kv.Get(ctx, votedKey(modelID))
	return err == nil
}

// Vote issues the vote through cast unless the client already voted.
// Returns true when a vote was actually issued; callers apply their +1
// optimistic display delta on true.
func (g *VoteGuard) Vote(ctx context.Context, modelID int, cast func(context.Context, int)) bool {
	if g.HasVoted(ctx, modelID) {
		return false
	}
	cast(ctx, modelID)
	// Mark immediately; the cast outcome is fire-and-forget.
	_ = g.kv.Set(ctx, votedKey(modelID), "1")
	return true
}

// Subscribed reports whether this client completed a newsletter signup.
func Subscribed(ctx context.Context, kv KV) bool {
	_, err := kv.Get(ctx, subscribedKey)
	return err == nil
}

// MarkSubscribed records a completed newsletter signup.
func MarkSubscribed(ctx context.Context, kv KV) error {
	return kv.Set(ctx, subscribedKey, "1")
}
