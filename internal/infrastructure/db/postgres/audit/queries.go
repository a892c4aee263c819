package audit

// appendLockKey serializes appends so created_at never decreases along id order.
const appendLockKey int64 = 0x61756469745f6c6b

const (
	LockAppend  = `SELECT pg_advisory_xact_lock($1)`
	InsertEntry = `
		INSERT INTO audit_entries (action_code, description, admin_id, admin_name, target_id, target_role, created_at)
		VALUES (
			$1, $2, $3, $4, $5::uuid, NULLIF($6, ''),
			GREATEST(clock_timestamp(), COALESCE((SELECT max(created_at) FROM audit_entries), '-infinity'::timestamptz))
		)
		RETURNING id, created_at
	`
	SelectEntries = `
		SELECT id, action_code, description, admin_id, admin_name, target_id::text, target_role, created_at
		FROM audit_entries
		WHERE ($1::text = '' OR action_code = $1)
		  AND ($2::uuid IS NULL OR target_id = $2)
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY id DESC
		LIMIT $5
	`
	CountEntriesByAction = `SELECT action_code, count(*) FROM audit_entries GROUP BY action_code`
)
