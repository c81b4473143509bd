package economy

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// appendTransfer records both sides of a money movement under one tx group.
// The ledger is an audit trail, not a balance source; failures here surface
// to the caller but balances are already written.
func (s *Service) appendTransfer(ctx context.Context, fromID, toID string, amount int64, action string) error {
	txID := uuid.NewString()
	meta, _ := json.Marshal(map[string]any{"action": action})
	_, err := s.db.Exec(ctx, `
		INSERT INTO ledger_entries (tx_group_id, user_id, delta, metadata)
		VALUES
		($1, $2, $3, $5::jsonb),
		($1, $4, $6, $5::jsonb)
	`, txID, fromID, -amount, toID, string(meta), amount)
	return err
}
