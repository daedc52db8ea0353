package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sealedJournal(t *testing.T) []*JournalEntry {
	t.Helper()
	founder := common.HexToAddress("0x1111111111111111111111111111111111111111")
	target := common.HexToAddress("0x2222222222222222222222222222222222222222")
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	entries := []*JournalEntry{
		{At: start, Caller: founder, Op: OpGenesis, Genesis: &GenesisPayload{Name: "guild", Founder: founder}},
		{At: start.Add(time.Minute), Caller: founder, Op: OpPropose, Proposal: &ProposalPayload{
			Kind:        KindElectRepresentative,
			Description: "add a member",
			Deadline:    start.Add(24 * time.Hour).UTC(),
			Target:      &target,
		}},
		{At: start.Add(2 * time.Minute), Caller: founder, Op: OpVote},
	}
	var prev *JournalEntry
	for _, e := range entries {
		require.NoError(t, e.Seal(prev))
		prev = e
	}
	return entries
}

func TestJournal_SealChainsEntries(t *testing.T) {
	entries := sealedJournal(t)

	assert.Equal(t, uint64(0), entries[0].Seq)
	assert.Equal(t, common.Hash{}, entries[0].PrevHash)
	assert.Equal(t, time.UTC, entries[0].At.Location())
	for i := 1; i < len(entries); i++ {
		assert.Equal(t, uint64(i), entries[i].Seq)
		assert.Equal(t, entries[i-1].Hash, entries[i].PrevHash)
		assert.NotEqual(t, common.Hash{}, entries[i].Hash)
	}
	require.NoError(t, VerifyJournal(entries))
}

func TestJournal_HashSurvivesJSONRoundTrip(t *testing.T) {
	entries := sealedJournal(t)

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	var decoded []*JournalEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NoError(t, VerifyJournal(decoded))
	assert.Equal(t, KindElectRepresentative, decoded[1].Proposal.Kind)
}

func TestJournal_VerifyDetectsTampering(t *testing.T) {
	t.Run("payload edited", func(t *testing.T) {
		entries := sealedJournal(t)
		entries[1].Proposal.Description = "something else"
		assert.ErrorContains(t, VerifyJournal(entries), "hash mismatch")
	})

	t.Run("entry dropped", func(t *testing.T) {
		entries := sealedJournal(t)
		entries = append(entries[:1], entries[2:]...)
		assert.Error(t, VerifyJournal(entries))
	})

	t.Run("entry relinked", func(t *testing.T) {
		entries := sealedJournal(t)
		entries[2].PrevHash = entries[0].Hash
		assert.ErrorContains(t, VerifyJournal(entries), "does not link")
	})
}

func TestProposalPayload_MotionTarget(t *testing.T) {
	target := common.HexToAddress("0x3333333333333333333333333333333333333333")

	p := &ProposalPayload{Kind: KindDismissRepresentative, Target: &target}
	got, err := p.MotionTarget()
	require.NoError(t, err)
	assert.Equal(t, RepresentativeTarget{Address: target}, got)

	rev := RequirementRevision{Kind: KindElectGovernor, Requirement: DefaultApprovalRequirement()}
	p = &ProposalPayload{Kind: KindReviseApprovalRequirement, Revision: &rev}
	got, err = p.MotionTarget()
	require.NoError(t, err)
	assert.Equal(t, rev, got)

	_, err = (&ProposalPayload{Kind: KindReviseApprovalRequirement, Target: &target}).MotionTarget()
	assert.Error(t, err)
	_, err = (&ProposalPayload{Kind: KindElectGovernor}).MotionTarget()
	assert.Error(t, err)
}
