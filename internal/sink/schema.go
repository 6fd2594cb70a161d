package sink

// Schema definitions for the database sinks.
// Compatible with both SQLite and PostgreSQL.

const schemaMomo = `
CREATE TABLE IF NOT EXISTS momo_transactions (
    transaction_id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    sender_account TEXT NOT NULL,
    receiver_account TEXT NOT NULL,
    amount_ghs DOUBLE PRECISION NOT NULL,
    transaction_type TEXT NOT NULL,
    channel TEXT NOT NULL,
    agent_id TEXT,
    merchant_category TEXT NOT NULL,
    location_region TEXT NOT NULL,
    device_id TEXT NOT NULL,
    is_new_device INTEGER NOT NULL,
    otp_requested INTEGER NOT NULL,
    linked_bank_account TEXT,
    income_tier TEXT NOT NULL,
    personal_alert_threshold DOUBLE PRECISION NOT NULL,
    label INTEGER NOT NULL,
    attack_type TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_momo_timestamp ON momo_transactions(timestamp);
CREATE INDEX IF NOT EXISTS idx_momo_label ON momo_transactions(label);
CREATE INDEX IF NOT EXISTS idx_momo_sender ON momo_transactions(sender_account);
`

const schemaBank = `
CREATE TABLE IF NOT EXISTS bank_transactions (
    transaction_id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    account_id TEXT NOT NULL,
    linked_momo_account TEXT NOT NULL,
    amount_ghs DOUBLE PRECISION NOT NULL,
    transaction_type TEXT NOT NULL,
    channel TEXT NOT NULL,
    counterparty_account TEXT NOT NULL,
    balance_before_ghs DOUBLE PRECISION NOT NULL,
    balance_after_ghs DOUBLE PRECISION NOT NULL,
    location_region TEXT NOT NULL,
    is_after_hours INTEGER NOT NULL,
    income_tier TEXT NOT NULL,
    personal_alert_threshold DOUBLE PRECISION NOT NULL,
    label INTEGER NOT NULL,
    attack_type TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bank_timestamp ON bank_transactions(timestamp);
CREATE INDEX IF NOT EXISTS idx_bank_label ON bank_transactions(label);
CREATE INDEX IF NOT EXISTS idx_bank_account ON bank_transactions(account_id);
`

const insertMomo = `
INSERT INTO momo_transactions (
    transaction_id, timestamp, sender_account, receiver_account, amount_ghs,
    transaction_type, channel, agent_id, merchant_category, location_region,
    device_id, is_new_device, otp_requested, linked_bank_account, income_tier,
    personal_alert_threshold, label, attack_type
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertBank = `
INSERT INTO bank_transactions (
    transaction_id, timestamp, account_id, linked_momo_account, amount_ghs,
    transaction_type, channel, counterparty_account, balance_before_ghs,
    balance_after_ghs, location_region, is_after_hours, income_tier,
    personal_alert_threshold, label, attack_type
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
