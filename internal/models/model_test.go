package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Test the is-active predicate boundaries
func TestAuction_IsActive(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  string
		start   time.Time
		end     time.Time
		want    bool
	}{
		{name: "inside_window", status: StatusActive, start: now.Add(-time.Hour), end: now.Add(time.Hour), want: true},
		{name: "start_equals_now_inclusive", status: StatusActive, start: now, end: now.Add(time.Hour), want: true},
		{name: "end_equals_now_excluded", status: StatusActive, start: now.Add(-time.Hour), end: now, want: false},
		{name: "not_started", status: StatusActive, start: now.Add(time.Minute), end: now.Add(time.Hour), want: false},
		{name: "expired", status: StatusActive, start: now.Add(-2*time.Hour), end: now.Add(-time.Hour), want: false},
		{name: "closed_status", status: StatusClosed, start: now.Add(-time.Hour), end: now.Add(time.Hour), want: false},
		{name: "cancelled_status", status: StatusCancelled, start: now.Add(-time.Hour), end: now.Add(time.Hour), want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := &Auction{Status: tc.status, StartTime: tc.start, EndTime: tc.end}
			require.Equal(t, tc.want, a.IsActive(now))
		})
	}
}

// Test the time-remaining derivation
func TestAuction_TimeRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	a := &Auction{EndTime: now.Add(90 * time.Minute)}
	require.Equal(t, 90*time.Minute, a.TimeRemaining(now))

	expired := &Auction{EndTime: now.Add(-time.Minute)}
	require.Equal(t, -time.Minute, expired.TimeRemaining(now))

	boundary := &Auction{EndTime: now}
	require.Equal(t, time.Duration(0), boundary.TimeRemaining(now))
}

// Test the full-name fallback
func TestUser_FullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		user  User
		want  string
	}{
		{name: "both_names", user: User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}, want: "Jane Doe"},
		{name: "first_only_falls_back", user: User{Username: "jdoe", FirstName: "Jane"}, want: "jdoe"},
		{name: "last_only_falls_back", user: User{Username: "jdoe", LastName: "Doe"}, want: "jdoe"},
		{name: "no_names", user: User{Username: "jdoe"}, want: "jdoe"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, tc.user.FullName())
		})
	}
}
