package timekeeper

import (
	"testing"

	"focusdeck/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestExecute(t *testing.T) {
	f := newFixture(t, model.DefaultSettings(), nil)

	require.NoError(t, f.keeper.Execute("start"))
	assert.True(t, f.keeper.Session().Running)

	require.NoError(t, f.keeper.Execute(" PAUSE "))
	assert.False(t, f.keeper.Session().Running)

	require.NoError(t, f.keeper.Execute(CommandToggle))
	assert.True(t, f.keeper.Session().Running)

	require.NoError(t, f.keeper.Execute(CommandSkip))
	assert.Equal(t, model.ModeShortBreak, f.keeper.Session().Mode)

	require.NoError(t, f.keeper.Execute(CommandReset))
	assert.Equal(t, model.ModeWork, f.keeper.Session().Mode)
	assert.Zero(t, f.keeper.Session().CycleCount)

	before := f.keeper.Session()
	require.NoError(t, f.keeper.Execute(CommandStatus))
	assert.Equal(t, before, f.keeper.Session())

	assert.ErrorIs(t, f.keeper.Execute("dance"), ErrUnknownCommand)
}

func TestSnapshot_YAMLRoundTrip(t *testing.T) {
	f := newFixture(t, model.DefaultSettings(), nil)
	f.keeper.Start()
	snapshot := f.keeper.Snapshot()

	encoded, err := yaml.Marshal(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), "remaining: 25m0s")

	var decoded Snapshot
	require.NoError(t, yaml.Unmarshal(encoded, &decoded))
	assert.Equal(t, snapshot, decoded)
}
