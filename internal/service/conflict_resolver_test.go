package service

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/models"
)

var (
	lastSync   = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	prevStatus = &models.RecordSyncStatus{RemoteRecordID: "d-1", SyncStatus: models.RecordSynced, LastSyncAt: &lastSync}
)

func conflictingPair() (models.Deal, models.Deal) {
	local := testDeal("d-1", lastSync.Add(-time.Hour))
	local.LocalID = 7
	local.LocalModifiedAt = ptrTime(lastSync.Add(time.Minute))
	local.Stage = "Proposal"
	local.Amount = 2000

	remote := testDeal("d-1", lastSync.Add(2*time.Minute))
	remote.Stage = "Negotiation"
	remote.Owner = "bob"
	return local, remote
}

// ─────────────────────────────────────────────
// One-sided changes
// ─────────────────────────────────────────────

func TestResolve_IdenticalFieldsIsNoConflict(t *testing.T) {
	r := NewConflictResolver(config.Sync{})
	local, _ := conflictingPair()
	remote := local
	remote.RemoteModifiedAt = ptrTime(lastSync.Add(time.Hour))

	out := r.Resolve(local, remote, prevStatus)

	assert.Equal(t, models.OutcomeNoConflict, out.Kind)
	assert.Empty(t, out.Fields)
}

func TestResolve_OnlyRemoteChanged(t *testing.T) {
	r := NewConflictResolver(config.Sync{ConflictPolicy: string(models.PolicyManual)})
	local, remote := conflictingPair()
	local.LocalModifiedAt = ptrTime(lastSync.Add(-time.Minute))

	out := r.Resolve(local, remote, prevStatus)

	assert.Equal(t, models.OutcomeNoConflict, out.Kind)
	assert.Equal(t, models.SideRemote, out.WinningSide)
	assert.Equal(t, "Negotiation", out.Merged.Stage)
	assert.Equal(t, int64(7), out.Merged.LocalID)
}

func TestResolve_OnlyLocalChanged(t *testing.T) {
	r := NewConflictResolver(config.Sync{})
	local, remote := conflictingPair()
	remote.RemoteModifiedAt = ptrTime(lastSync.Add(-time.Minute))

	out := r.Resolve(local, remote, prevStatus)

	assert.Equal(t, models.OutcomeNoConflict, out.Kind)
	assert.Equal(t, models.SideLocal, out.WinningSide)
	assert.Equal(t, "Proposal", out.Merged.Stage)
}

func TestResolve_NeverSyncedLocalEditIsConflict(t *testing.T) {
	r := NewConflictResolver(config.Sync{ConflictPolicy: string(models.PolicyManual)})
	local, remote := conflictingPair()

	out := r.Resolve(local, remote, nil)

	assert.Equal(t, models.OutcomeUnresolved, out.Kind)
}

// ─────────────────────────────────────────────
// Policies
// ─────────────────────────────────────────────

func TestResolve_Policies(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.Sync
		wantKind   models.OutcomeKind
		wantSide   models.Side
		wantStage  string
		wantAmount float64
		wantOwner  string
	}{
		{
			name:       "default is remote wins",
			cfg:        config.Sync{},
			wantKind:   models.OutcomeAutoResolved,
			wantSide:   models.SideRemote,
			wantStage:  "Negotiation",
			wantAmount: 1000,
			wantOwner:  "bob",
		},
		{
			name:       "local wins",
			cfg:        config.Sync{ConflictPolicy: string(models.PolicyLocalWins)},
			wantKind:   models.OutcomeAutoResolved,
			wantSide:   models.SideLocal,
			wantStage:  "Proposal",
			wantAmount: 2000,
		},
		{
			name:     "manual",
			cfg:      config.Sync{ConflictPolicy: string(models.PolicyManual)},
			wantKind: models.OutcomeUnresolved,
		},
		{
			name:       "field ownership mixes sides",
			cfg:        config.Sync{ConflictPolicy: string(models.PolicyFieldOwnership), LocalOwnedFields: []string{models.FieldAmount}},
			wantKind:   models.OutcomeAutoResolved,
			wantSide:   models.SideMixed,
			wantStage:  "Negotiation",
			wantAmount: 2000,
			wantOwner:  "bob",
		},
		{
			name:       "field ownership with every field local",
			cfg:        config.Sync{ConflictPolicy: string(models.PolicyFieldOwnership), LocalOwnedFields: []string{models.FieldAmount, models.FieldStage, models.FieldOwner}},
			wantKind:   models.OutcomeAutoResolved,
			wantSide:   models.SideLocal,
			wantStage:  "Proposal",
			wantAmount: 2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewConflictResolver(tt.cfg)
			local, remote := conflictingPair()

			out := r.Resolve(local, remote, prevStatus)

			require.Equal(t, tt.wantKind, out.Kind)
			assert.Equal(t, []string{models.FieldAmount, models.FieldOwner, models.FieldStage}, out.FieldNames())
			if tt.wantKind == models.OutcomeUnresolved {
				for _, f := range out.Fields {
					assert.Empty(t, f.Winner)
				}
				return
			}
			assert.Equal(t, tt.wantSide, out.WinningSide)
			assert.Equal(t, tt.wantStage, out.Merged.Stage)
			assert.Equal(t, tt.wantAmount, out.Merged.Amount)
			assert.Equal(t, tt.wantOwner, out.Merged.Owner)
			assert.Equal(t, int64(7), out.Merged.LocalID)
		})
	}
}

func TestResolve_FieldDiffCarriesBothValues(t *testing.T) {
	r := NewConflictResolver(config.Sync{ConflictPolicy: string(models.PolicyManual)})
	local, remote := conflictingPair()

	out := r.Resolve(local, remote, prevStatus)

	require.Len(t, out.Fields, 3)
	stage := out.Fields[2]
	assert.Equal(t, models.FieldStage, stage.Field)
	assert.Equal(t, "Proposal", stage.Local)
	assert.Equal(t, "Negotiation", stage.Remote)
}

// TestResolve_ConflictFieldsEqualDifferingFields checks, over random pairs
// modified on both sides after the last sync, that every policy reports
// exactly the set of differing tracked fields.
func TestResolve_ConflictFieldsEqualDifferingFields(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	policies := []config.Sync{
		{ConflictPolicy: string(models.PolicyRemoteWins)},
		{ConflictPolicy: string(models.PolicyLocalWins)},
		{ConflictPolicy: string(models.PolicyManual)},
		{ConflictPolicy: string(models.PolicyFieldOwnership), LocalOwnedFields: []string{models.FieldStage, models.FieldDescription}},
	}
	stages := []string{"Qualification", "Proposal", "Negotiation", "Closed Won"}

	for i := 0; i < 200; i++ {
		local := testDeal("d-x", lastSync.Add(-time.Hour))
		remote := testDeal("d-x", lastSync.Add(time.Duration(1+rng.IntN(600))*time.Second))
		local.LocalModifiedAt = ptrTime(lastSync.Add(time.Duration(1+rng.IntN(600)) * time.Second))

		local.Stage = stages[rng.IntN(len(stages))]
		remote.Stage = stages[rng.IntN(len(stages))]
		local.Amount = float64(rng.IntN(3) * 500)
		remote.Amount = float64(rng.IntN(3) * 500)
		local.Probability = rng.IntN(3) * 10
		remote.Probability = rng.IntN(3) * 10
		if rng.IntN(2) == 0 {
			remote.Description = "changed remotely"
		}

		want := models.DiffFields(local, remote)
		for _, cfg := range policies {
			out := NewConflictResolver(cfg).Resolve(local, remote, prevStatus)
			if len(want) == 0 {
				assert.Equal(t, models.OutcomeNoConflict, out.Kind)
				continue
			}
			assert.NotEqual(t, models.OutcomeNoConflict, out.Kind)
			assert.Equal(t, want, out.FieldNames(), "policy %s", cfg.ConflictPolicy)
		}
	}
}
