package domain

import "time"

// AttendanceRecord is one shift for one user.
// PK: attendance_id. GSI user_id-index: (user_id, clock_in) — clock_in is
// RFC 3339 in UTC so range conditions order chronologically.
// ClockOut is absent while the shift is open; closing is a conditional update
// gated on the attribute not existing yet, so a record is closed at most once.
type AttendanceRecord struct {
	AttendanceID    string     `json:"id" dynamodbav:"attendance_id"`
	UserID          string     `json:"user_id" dynamodbav:"user_id"`
	ClockIn         time.Time  `json:"clock_in" dynamodbav:"clock_in"`
	ClockOut        *time.Time `json:"clock_out" dynamodbav:"clock_out,omitempty"`
	LocationLat     *float64   `json:"location_lat,omitempty" dynamodbav:"location_lat,omitempty"`
	LocationLng     *float64   `json:"location_lng,omitempty" dynamodbav:"location_lng,omitempty"`
	LocationAddress *string    `json:"location_address,omitempty" dynamodbav:"location_address,omitempty"`
}

// ClockInRequest is the clock-in request body.
type ClockInRequest struct {
	UserID          string   `json:"user_id" validate:"required"`
	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
	LocationAddress *string  `json:"location_address"`
}
