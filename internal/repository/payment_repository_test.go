package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvgAmount(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		count int64
		want  int64
	}{
		{"two payments", 30000, 2, 15000},
		{"single payment", 120000, 1, 120000},
		{"empty month", 0, 0, 0},
		{"truncates", 100000, 3, 33333},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, avgAmount(tc.total, tc.count))
		})
	}
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errFromString("Error 1062 (23000): Duplicate entry 'minjae' for key 'accounts.login_id'")))
	assert.False(t, isDuplicateKey(errFromString("Error 1406: Data too long")))
	assert.False(t, isDuplicateKey(nil))
}

type errFromString string

func (e errFromString) Error() string { return string(e) }
