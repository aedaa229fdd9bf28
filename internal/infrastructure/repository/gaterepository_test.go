package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ba6/gatekeeper/internal/domain/gate"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

func insertGate(t *testing.T, db *gorm.DB, id, targetType, targetID, gateType string, enabled bool, config string, createdAt time.Time) {
	t.Helper()
	row := &models.GateModel{
		ID:         id,
		TargetType: targetType,
		TargetID:   targetID,
		GateType:   gateType,
		IsEnabled:  true,
		Config:     datatypes.JSON(config),
		CreatedAt:  createdAt,
	}
	require.NoError(t, db.Create(row).Error)
	if !enabled {
		// is_enabled defaults to true, so a false zero value is not inserted
		require.NoError(t, db.Model(row).Update("is_enabled", false).Error)
	}
}

func TestGateRepository_ListEnabled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGateRepository(db, logger.NewNopLogger())
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	insertGate(t, db, "b-newer", "space", "s1", "pay_gate", true, `{"gate_actions": ["join"], "lookup_key": "k2"}`, base.Add(time.Hour))
	insertGate(t, db, "c-oldest", "space", "s1", "pay_gate", true, `{"gate_actions": ["join"], "lookup_key": "k1"}`, base)
	insertGate(t, db, "a-tie", "space", "s1", "pay_gate", true, `{"gate_actions": "join"}`, base.Add(time.Hour))
	insertGate(t, db, "d-disabled", "space", "s1", "pay_gate", false, `{"gate_actions": ["join"]}`, base.Add(-time.Hour))
	insertGate(t, db, "e-token", "space", "s1", "token_gate", true, `{"action": "join"}`, base)
	insertGate(t, db, "f-other", "space", "s2", "pay_gate", true, `{"gate_actions": ["join"]}`, base)
	insertGate(t, db, "g-feed", "feed", "s1", "pay_gate", true, `{"gate_actions": ["join"]}`, base)

	t.Run("pay gates oldest first, id breaks ties", func(t *testing.T) {
		gates, err := repo.ListEnabled(ctx, gate.GateTypePay, gate.TargetTypeSpace, "s1")
		require.NoError(t, err)

		ids := make([]string, 0, len(gates))
		for _, g := range gates {
			ids = append(ids, g.ID())
		}
		assert.Equal(t, []string{"c-oldest", "a-tie", "b-newer"}, ids)
		assert.Equal(t, "k1", gates[0].PayConfig().LookupKey)
		assert.Equal(t, []string{"join"}, gates[1].Actions())
	})

	t.Run("token gates", func(t *testing.T) {
		gates, err := repo.ListEnabled(ctx, gate.GateTypeToken, gate.TargetTypeSpace, "s1")
		require.NoError(t, err)
		require.Len(t, gates, 1)
		assert.Equal(t, []string{"join"}, gates[0].Actions())
	})

	t.Run("no gates", func(t *testing.T) {
		gates, err := repo.ListEnabled(ctx, gate.GateTypePay, gate.TargetTypeFeed, "missing")
		require.NoError(t, err)
		assert.Empty(t, gates)
	})
}

func TestGateRepository_ListAllEnabled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGateRepository(db, logger.NewNopLogger())
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	insertGate(t, db, "g3", "space", "s2", "pay_gate", true, `{}`, base)
	insertGate(t, db, "g2", "space", "s1", "pay_gate", true, `{}`, base.Add(time.Minute))
	insertGate(t, db, "g1", "space", "s1", "token_gate", true, `{}`, base)
	insertGate(t, db, "g0", "feed", "f1", "pay_gate", true, `{}`, base)
	insertGate(t, db, "gx", "space", "s1", "nft_gate", true, `{}`, base)
	insertGate(t, db, "gd", "space", "s1", "pay_gate", false, `{}`, base)

	gates, err := repo.ListAllEnabled(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(gates))
	for _, g := range gates {
		ids = append(ids, g.ID())
	}
	assert.Equal(t, []string{"g0", "g1", "g2", "g3"}, ids)
}

func TestGateRepository_ListEnabled_Postgres(t *testing.T) {
	db, mock := setupMockPostgres(t)
	repo := NewGateRepository(db, logger.NewNopLogger())
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "target_type", "target_id", "gate_type", "is_enabled", "config", "created_at", "updated_at"}).
		AddRow("9b2f0c1e-0000-4000-8000-000000000001", "space", "s1", "pay_gate", true, []byte(`{"gate_actions": ["join"], "lookup_key": "pro"}`), createdAt, createdAt)

	mock.ExpectQuery(`SELECT \* FROM "gates" WHERE gate_type = \$1 AND is_enabled = \$2 AND \(target_type = \$3 AND target_id = \$4\) ORDER BY created_at ASC,id ASC`).
		WithArgs("pay_gate", true, "space", "s1").
		WillReturnRows(rows)

	gates, err := repo.ListEnabled(context.Background(), gate.GateTypePay, gate.TargetTypeSpace, "s1")

	require.NoError(t, err)
	require.Len(t, gates, 1)
	assert.Equal(t, "pro", gates[0].PayConfig().LookupKey)
	assert.Equal(t, createdAt, gates[0].CreatedAt())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateRepository_ListEnabled_ConnectionFailure(t *testing.T) {
	db, mock := setupMockPostgres(t)
	repo := NewGateRepository(db, logger.NewNopLogger())
	connErr := errors.New("dial tcp 10.0.0.5:6543: connect: connection refused")

	mock.ExpectQuery(`SELECT \* FROM "gates"`).WillReturnError(connErr)

	gates, err := repo.ListEnabled(context.Background(), gate.GateTypePay, gate.TargetTypeSpace, "s1")

	assert.Nil(t, gates)
	assert.ErrorIs(t, err, connErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
