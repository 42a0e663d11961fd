package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes that gorm tags cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

var advancedIndexes = []indexStatement{
	{
		// one friendship row per unordered pair, whichever side asked first
		name: "idx_friendships_unordered_pair",
		sql: `CREATE UNIQUE INDEX IF NOT EXISTS idx_friendships_unordered_pair
			ON friendships (LEAST(requester_id, addressee_id), GREATEST(requester_id, addressee_id))`,
	},
	{
		name: "idx_friendships_pending_addressee",
		sql: `CREATE INDEX IF NOT EXISTS idx_friendships_pending_addressee
			ON friendships (addressee_id, created_at) WHERE status = 'pending'`,
	},
	{
		name: "idx_watch_rooms_active_public",
		sql: `CREATE INDEX IF NOT EXISTS idx_watch_rooms_active_public
			ON watch_rooms (created_at DESC) WHERE is_active AND NOT is_private`,
	},
	{
		name: "idx_watch_participants_room_joined",
		sql: `CREATE INDEX IF NOT EXISTS idx_watch_participants_room_joined
			ON watch_participants (room_id, joined_at)`,
	},
	{
		name: "idx_transactions_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
			ON transactions USING BRIN (created_at) WITH (pages_per_range = 32)`,
	},
	{
		name: "chk_transactions_type",
		sql: `DO $$ BEGIN
			ALTER TABLE transactions ADD CONSTRAINT chk_transactions_type CHECK (type IN
				('purchase', 'subscription', 'transfer_in', 'transfer_out', 'admin_credit', 'subscription_cancel'));
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
	{
		name: "chk_users_subscription",
		sql: `DO $$ BEGIN
			ALTER TABLE users ADD CONSTRAINT chk_users_subscription CHECK (subscription IN ('none', 'basic', 'pro', 'premium'));
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
	{
		name: "chk_friendships_not_self",
		sql: `DO $$ BEGIN
			ALTER TABLE friendships ADD CONSTRAINT chk_friendships_not_self CHECK (requester_id <> addressee_id);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
	{
		name: "chk_followers_not_self",
		sql: `DO $$ BEGIN
			ALTER TABLE followers ADD CONSTRAINT chk_followers_not_self CHECK (follower_id <> following_id);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
	{
		name: "chk_blocked_users_not_self",
		sql: `DO $$ BEGIN
			ALTER TABLE blocked_users ADD CONSTRAINT chk_blocked_users_not_self CHECK (user_id <> blocked_user_id);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$`,
	},
}

// CreateAdvancedIndexes creates expression and partial indexes plus table checks
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	for _, stmt := range advancedIndexes {
		if err := m.db.WithContext(ctx).Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": stmt.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", map[string]any{
		"count": len(advancedIndexes),
	})
	return nil
}

// CreatePerformanceTweaks applies storage settings. Failures are only logged.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	// hot rows updated in place on every balance change or playback command
	for _, table := range []string{"users", "watch_rooms"} {
		if err := m.db.WithContext(ctx).Exec("ALTER TABLE " + table + " SET (fillfactor = 90)").Error; err != nil {
			m.logger.Warn("Failed to set fillfactor", map[string]any{
				"table": table,
				"error": err.Error(),
			})
		}
	}
}
