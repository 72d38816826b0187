package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordStageDuration(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordStageDuration("mesh", 10*time.Millisecond)
	})
}

func TestRecordRun(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRun()
	})
}

func TestRecordDegeneracyCorrection(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordDegeneracyCorrection("no_land")
	})
}
