package service

import (
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/models"
)

type conflictResolver struct {
	policy     models.ConflictPolicy
	localOwned map[string]bool
}

// NewConflictResolver returns the resolver for the configured policy.
// An empty or unknown policy falls back to remote_wins.
func NewConflictResolver(cfg config.Sync) ConflictResolver {
	policy := models.ConflictPolicy(cfg.ConflictPolicy)
	if !policy.Valid() {
		policy = models.PolicyRemoteWins
	}

	owned := make(map[string]bool, len(cfg.LocalOwnedFields))
	for _, f := range cfg.LocalOwnedFields {
		owned[f] = true
	}

	return &conflictResolver{policy: policy, localOwned: owned}
}

// Resolve compares the local and remote versions of one record.
//
// previousSync is the record status written by the last successful sync; nil
// means the record was never synced. A side counts as changed when it was
// modified after previousSync.LastSyncAt. Only when both sides changed and
// their tracked fields differ is the configured policy consulted; Fields then
// lists every differing tracked field.
func (r *conflictResolver) Resolve(local, remote models.Deal, previousSync *models.RecordSyncStatus) models.ResolutionOutcome {
	fromRemote := adoptIdentity(remote, local)

	diff := models.DiffFields(local, remote)
	if len(diff) == 0 {
		return models.ResolutionOutcome{Kind: models.OutcomeNoConflict, Merged: fromRemote}
	}

	localChanged := changedLocally(local, previousSync)
	remoteChanged := changedRemotely(remote, previousSync)

	switch {
	case localChanged && !remoteChanged:
		return models.ResolutionOutcome{Kind: models.OutcomeNoConflict, WinningSide: models.SideLocal, Merged: local}
	case !localChanged:
		return models.ResolutionOutcome{Kind: models.OutcomeNoConflict, WinningSide: models.SideRemote, Merged: fromRemote}
	}

	return r.applyPolicy(local, fromRemote, diff)
}

func (r *conflictResolver) applyPolicy(local, remote models.Deal, diff []string) models.ResolutionOutcome {
	lv, rv := local.FieldValues(), remote.FieldValues()
	fields := make([]models.FieldDiff, 0, len(diff))
	for _, name := range diff {
		fields = append(fields, models.FieldDiff{Field: name, Local: lv[name], Remote: rv[name]})
	}

	switch r.policy {
	case models.PolicyManual:
		return models.ResolutionOutcome{Kind: models.OutcomeUnresolved, Fields: fields}

	case models.PolicyLocalWins:
		for i := range fields {
			fields[i].Winner = models.SideLocal
		}
		return models.ResolutionOutcome{
			Kind:        models.OutcomeAutoResolved,
			WinningSide: models.SideLocal,
			Fields:      fields,
			Merged:      local,
		}

	case models.PolicyFieldOwnership:
		merged := remote
		localWins := 0
		for i, f := range fields {
			if r.localOwned[f.Field] {
				merged = merged.WithField(f.Field, local)
				fields[i].Winner = models.SideLocal
				localWins++
				continue
			}
			fields[i].Winner = models.SideRemote
		}

		side := models.SideMixed
		switch localWins {
		case 0:
			side = models.SideRemote
		case len(fields):
			side = models.SideLocal
		}
		return models.ResolutionOutcome{
			Kind:        models.OutcomeAutoResolved,
			WinningSide: side,
			Fields:      fields,
			Merged:      merged,
		}

	default:
		for i := range fields {
			fields[i].Winner = models.SideRemote
		}
		return models.ResolutionOutcome{
			Kind:        models.OutcomeAutoResolved,
			WinningSide: models.SideRemote,
			Fields:      fields,
			Merged:      remote,
		}
	}
}

// adoptIdentity returns remote carrying the local id and local modification
// stamp of local.
func adoptIdentity(remote, local models.Deal) models.Deal {
	remote.LocalID = local.LocalID
	remote.LocalModifiedAt = local.LocalModifiedAt
	return remote
}

func changedLocally(local models.Deal, prev *models.RecordSyncStatus) bool {
	if local.LocalModifiedAt == nil {
		return false
	}
	if prev == nil || prev.LastSyncAt == nil {
		return true
	}
	return local.LocalModifiedAt.After(*prev.LastSyncAt)
}

func changedRemotely(remote models.Deal, prev *models.RecordSyncStatus) bool {
	if prev == nil || prev.LastSyncAt == nil || remote.RemoteModifiedAt == nil {
		return true
	}
	return remote.RemoteModifiedAt.After(*prev.LastSyncAt)
}
