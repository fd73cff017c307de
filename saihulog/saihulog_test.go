package saihulog_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfeel220/saihu/saihulog"
)

func TestSetLevel(t *testing.T) {
	require.NoError(t, saihulog.SetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	require.Error(t, saihulog.SetLevel("not-a-level"))

	require.NoError(t, saihulog.SetLevel("info"))
}

func TestSetLoggerAndLogger(t *testing.T) {
	custom := logrus.WithField("component", "test")
	saihulog.SetLogger(custom)
	assert.Equal(t, custom, saihulog.Logger())

	saihulog.SetLogger(logrus.StandardLogger())
}
