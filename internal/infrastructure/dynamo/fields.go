package dynamo

// DynamoDB attribute names used in expressions across the repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldEmail        = "email"
	fieldCode         = "code"
	fieldPurpose      = "purpose"
	fieldUserID       = "user_id"
	fieldClockIn      = "clock_in"
	fieldClockOut     = "clock_out"
	fieldUpdatedAt    = "updated_at"
	fieldPasswordHash = "password_hash"
	fieldUsername     = "username"
)
