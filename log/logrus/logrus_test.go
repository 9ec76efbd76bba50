package logrus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/itemcache"
)

func TestForwardsLevelsAndFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := Logger{E: logrus.NewEntry(base)}

	l.Debug("d", nil)
	l.Warn("w", itemcache.Fields{"key": "a"})

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.DebugLevel, hook.AllEntries()[0].Level)
	last := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "w", last.Message)
	assert.Equal(t, "a", last.Data["key"])
}
