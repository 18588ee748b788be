package constants

// Statement names shared by the postgres repositories.
const (
	StmtGetPerson        = "get_person"
	StmtGetPersonByEmail = "get_person_by_email"
	StmtUpsertPerson     = "upsert_person"
	StmtLeaderboard      = "leaderboard"

	StmtGetActivity    = "get_activity"
	StmtUpsertActivity = "upsert_activity"
	StmtListActivities = "list_activities"

	StmtGetAction           = "get_action"
	StmtUpsertAction        = "upsert_action"
	StmtListActionsByTarget = "list_actions_by_target"
)

var Queries = map[string]string{
	StmtGetPerson: `
		SELECT id::text, name, email, role, reputation, created_at, updated_at
		FROM persons
		WHERE id = $1::uuid`,

	StmtGetPersonByEmail: `
		SELECT id::text, name, email, role, reputation, created_at, updated_at
		FROM persons
		WHERE email = lower($1)`,

	StmtUpsertPerson: `
		INSERT INTO persons (id, name, email, role, reputation, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    role = EXCLUDED.role,
		    reputation = EXCLUDED.reputation,
		    updated_at = EXCLUDED.updated_at`,

	StmtLeaderboard: `
		SELECT id::text, name, email, role, reputation, created_at, updated_at
		FROM persons
		ORDER BY reputation DESC, name ASC
		LIMIT $1`,

	StmtGetActivity: `
		SELECT id::text, title, description, points, created_by::text, active, created_at, updated_at
		FROM activities
		WHERE id = $1::uuid`,

	StmtUpsertActivity: `
		INSERT INTO activities (id, title, description, points, created_by, active, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5::uuid, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    points = EXCLUDED.points,
		    active = EXCLUDED.active,
		    updated_at = EXCLUDED.updated_at`,

	StmtListActivities: `
		SELECT id::text, title, description, points, created_by::text, active, created_at, updated_at
		FROM activities
		WHERE active OR NOT $1
		ORDER BY created_at ASC`,

	StmtGetAction: `
		SELECT id::text, activity_id::text, person_id::text, proof_ref, status, reviewed_by::text, awarded_points, submitted_at, reviewed_at
		FROM actions
		WHERE id = $1::uuid`,

	StmtUpsertAction: `
		INSERT INTO actions (id, activity_id, person_id, proof_ref, status, reviewed_by, awarded_points, submitted_at, reviewed_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    reviewed_by = EXCLUDED.reviewed_by,
		    awarded_points = EXCLUDED.awarded_points,
		    reviewed_at = EXCLUDED.reviewed_at`,

	StmtListActionsByTarget: `
		SELECT id::text, activity_id::text, person_id::text, proof_ref, status, reviewed_by::text, awarded_points, submitted_at, reviewed_at
		FROM actions
		WHERE ($1 = 'activity' AND activity_id = $2::uuid)
		   OR ($1 = 'person' AND person_id = $2::uuid)
		ORDER BY submitted_at ASC`,
}
