package db

import (
	"context"
	"fmt"
	"log"
)

// Schema constraints do the enforcement the admin surface relies on:
// the partial unique index keeps one primary contact per company, the
// CHECKs reject out-of-range coordinates and floor counts, and the FK
// actions implement the cascade / set-null lifecycle.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		company_id  BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		logo_url    TEXT,
		website     TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		contact_id       BIGSERIAL PRIMARY KEY,
		company_id       BIGINT NOT NULL REFERENCES companies(company_id) ON DELETE CASCADE,
		user_id          BIGINT UNIQUE,
		first_name       TEXT NOT NULL,
		last_name        TEXT NOT NULL,
		email            TEXT NOT NULL,
		phone            TEXT NOT NULL DEFAULT '',
		is_primary       BOOLEAN NOT NULL DEFAULT FALSE,
		telegram_chat_id TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS contacts_one_primary_per_company
		ON contacts (company_id) WHERE is_primary`,

	`CREATE TABLE IF NOT EXISTS agents (
		agent_id         BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL,
		company_id       BIGINT NOT NULL REFERENCES companies(company_id) ON DELETE CASCADE,
		telegram_chat_id TEXT NOT NULL DEFAULT '',
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT agents_one_per_user UNIQUE (user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS objects (
		object_id   BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		object_type TEXT NOT NULL DEFAULT 'warehouse',
		status      TEXT NOT NULL DEFAULT 'active',
		city        TEXT NOT NULL DEFAULT 'spb',
		address     TEXT NOT NULL,
		latitude    NUMERIC(9,6) CHECK (latitude BETWEEN -90 AND 90),
		longitude   NUMERIC(9,6) CHECK (longitude BETWEEN -180 AND 180),
		owner_id    BIGINT NOT NULL REFERENCES companies(company_id) ON DELETE CASCADE,
		total_area  NUMERIC(10,2) NOT NULL CHECK (total_area > 0),
		floors      SMALLINT CHECK (floors >= 1),
		build_year  INTEGER,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS offers (
		offer_id            BIGSERIAL PRIMARY KEY,
		object_id           BIGINT NOT NULL REFERENCES objects(object_id) ON DELETE CASCADE,
		vacancy_type        TEXT NOT NULL,
		offer_type          TEXT NOT NULL DEFAULT 'lease',
		parent_offer_id     BIGINT REFERENCES offers(offer_id) ON DELETE CASCADE,
		title               TEXT NOT NULL,
		contact_id          BIGINT REFERENCES contacts(contact_id) ON DELETE SET NULL,
		whs_area            NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (whs_area >= 0),
		mez_area            NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (mez_area >= 0),
		office_area         NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (office_area >= 0),
		tech_area           NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (tech_area >= 0),
		sale_price          NUMERIC(15,2),
		lease_price_per_sqm NUMERIC(10,2),
		currency            TEXT NOT NULL DEFAULT 'RUB',
		is_available        BOOLEAN NOT NULL DEFAULT TRUE,
		available_from      DATE,
		height              NUMERIC(6,2) NOT NULL DEFAULT 0,
		column_grid         TEXT NOT NULL DEFAULT '',
		floor_load          NUMERIC(6,2) NOT NULL DEFAULT 0,
		floor_type          TEXT NOT NULL DEFAULT '',
		docks_count         INTEGER NOT NULL DEFAULT 0,
		fire_alarm          BOOLEAN NOT NULL DEFAULT TRUE,
		sprinkler_system    BOOLEAN NOT NULL DEFAULT TRUE,
		smoke_removal       BOOLEAN NOT NULL DEFAULT TRUE,
		hydrants            BOOLEAN NOT NULL DEFAULT FALSE,
		special_fire_system BOOLEAN NOT NULL DEFAULT FALSE,
		ventilation         BOOLEAN NOT NULL DEFAULT FALSE,
		electricity_kw      NUMERIC(8,2) NOT NULL DEFAULT 0,
		water               TEXT NOT NULL DEFAULT 'municipal',
		heating             TEXT NOT NULL DEFAULT 'municipal',
		sewage              TEXT NOT NULL DEFAULT 'municipal',
		floorplan_url       TEXT,
		description         TEXT NOT NULL DEFAULT '',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS object_images (
		image_id      UUID PRIMARY KEY,
		object_id     BIGINT NOT NULL REFERENCES objects(object_id) ON DELETE CASCADE,
		image_url     TEXT NOT NULL,
		caption       TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS object_images_order
		ON object_images (object_id, display_order, uploaded_at)`,

	`CREATE INDEX IF NOT EXISTS offers_by_object ON offers (object_id)`,
	`CREATE INDEX IF NOT EXISTS contacts_by_company ON contacts (company_id)`,
	`CREATE INDEX IF NOT EXISTS objects_by_owner ON objects (owner_id)`,
}

// EnsureSchema creates the tables, constraints and indexes if they do
// not exist yet. Every statement is idempotent.
func (db *Database) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	log.Println("[DB] Schema ensured")
	return nil
}
