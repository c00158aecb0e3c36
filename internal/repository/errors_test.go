package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sqlite style lock", err: errors.New("database is locked"), want: true},
		{name: "postgres deadlock", err: errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), want: true},
		{name: "serialization failure", err: errors.New("could not serialize access due to concurrent update"), want: true},
		{name: "wrapped busy error", err: fmt.Errorf("run pass: %w", errors.New("lock timeout")), want: true},
		{name: "plain failure", err: errors.New("relation \"tasks\" does not exist"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBusy(tt.err))
		})
	}
}
