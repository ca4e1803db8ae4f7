package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Plain(t *testing.T) {
	f := &Formatter{DisableColor: true}
	entry := &logrus.Entry{
		Time:    time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "frontier empty",
		Data:    logrus.Fields{"step": 7, "event": "not-found"},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-04 03:02:01 [WARNING] frontier empty event=not-found step=7\n", string(out))
}

func TestFormatter_ColorAndHiddenTime(t *testing.T) {
	f := &Formatter{HideLogTime: true}
	entry := &logrus.Entry{Level: logrus.ErrorLevel, Message: "boom", Data: logrus.Fields{}}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "\033[31m[ERROR] boom"))
}

func TestInit_Levels(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	require.NoError(t, Init(Options{Verbose: true, DisableColor: true}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	require.NoError(t, Init(Options{Quiet: true}))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestInit_FileHook(t *testing.T) {
	dir := t.TempDir()
	defer func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
		logrus.SetOutput(os.Stderr)
	}()

	require.NoError(t, Init(Options{Quiet: true, FileDir: dir}))
	logrus.Info("written to file")

	data, err := os.ReadFile(filepath.Join(dir, "stepviz.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
