package aggregate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/agency-atlas/pkg/models/domain"
	"github.com/de-tools/agency-atlas/pkg/models/store"
)

func (s *defaultStore) GetOrganization(ctx context.Context, organizationID string) (*store.OrganizationRow, error) {
	query := `
		SELECT id, name
		FROM organizations
		WHERE id = $1
	`
	var o store.OrganizationRow
	err := s.db.QueryRowContext(ctx, query, organizationID).Scan(&o.ID, &o.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organization %s: %w", organizationID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}
