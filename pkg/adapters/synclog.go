package adapters

import (
	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func MapDomainSyncLogToStore(l domain.SyncLog) store.SyncLogRecord {
	return store.SyncLogRecord{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Status:         string(l.Status),
		Error:          l.Error,
		NodesSynced:    l.NodesSynced,
		EdgesSynced:    l.EdgesSynced,
		StartedAt:      l.StartedAt,
		FinishedAt:     l.FinishedAt,
	}
}

func MapStoreSyncLogToDomain(r store.SyncLogRecord) domain.SyncLog {
	return domain.SyncLog{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Status:         domain.SyncStatus(r.Status),
		Error:          r.Error,
		NodesSynced:    r.NodesSynced,
		EdgesSynced:    r.EdgesSynced,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
	}
}
