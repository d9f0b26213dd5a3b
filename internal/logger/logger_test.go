package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&buf, "portfolio-cms", "production", "")

	log.WithField("user_id", "7").Info("profile updated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "profile updated", entry["msg"])
	assert.Equal(t, "7", entry["user_id"])
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewDevelopmentLevels(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, logrus.DebugLevel, newWithOutput(&buf, "app", "development", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, newWithOutput(&buf, "app", "development", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, newWithOutput(&buf, "app", "production", "bogus").GetLevel())
}
