package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"task-assistant/internal/model"
)

func TestNextRunTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		unit string
		want time.Time
	}{
		{
			name: "minute adds one minute",
			unit: model.RunEveryMinute,
			want: now.Add(time.Minute),
		},
		{
			name: "hourly adds one hour",
			unit: model.RunEveryHourly,
			want: now.Add(time.Hour),
		},
		{
			name: "daily adds 24 hours",
			unit: model.RunEveryDaily,
			want: now.Add(24 * time.Hour),
		},
		{
			name: "weekly adds 7 days",
			unit: model.RunEveryWeekly,
			want: now.Add(7 * 24 * time.Hour),
		},
		{
			name: "monthly adds a fixed 30 days",
			unit: model.RunEveryMonthly,
			want: now.Add(30 * 24 * time.Hour),
		},
		{
			name: "unknown unit falls back to daily",
			unit: "fortnightly",
			want: now.Add(24 * time.Hour),
		},
		{
			name: "empty unit falls back to daily",
			unit: "",
			want: now.Add(24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRunTime(tt.unit, now))
		})
	}
}
