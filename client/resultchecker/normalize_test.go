package resultchecker

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTokenShapes(t *testing.T) {
	token, err := NormalizeToken(json.RawMessage(`"abc123"`))
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = NormalizeToken(json.RawMessage(`{"token":"abc123"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = NormalizeToken(json.RawMessage(`{"token":""}`))
	assert.Error(t, err)

	_, err = NormalizeToken(json.RawMessage(`""`))
	assert.Error(t, err)

	_, err = NormalizeToken(json.RawMessage(`[1,2]`))
	assert.Error(t, err)
}

func TestNormalizeReportShapes(t *testing.T) {
	body := `{"student":{"name":"Ada"},"term":{"id":"t1"},"cognitive":[],"school":{},"comment":"good"}`

	t.Run("root level", func(t *testing.T) {
		report, err := NormalizeReport(json.RawMessage(body))
		require.NoError(t, err)
		assert.True(t, report.Complete())
	})

	t.Run("nested under reportSheet", func(t *testing.T) {
		report, err := NormalizeReport(json.RawMessage(`{"reportSheet":` + body + `}`))
		require.NoError(t, err)
		assert.True(t, report.Complete())
	})

	t.Run("missing sections are incomplete", func(t *testing.T) {
		report, err := NormalizeReport(json.RawMessage(`{"student":{"name":"Ada"}}`))
		require.NoError(t, err)
		assert.False(t, report.Complete())
	})

	t.Run("null section is incomplete", func(t *testing.T) {
		report, err := NormalizeReport(json.RawMessage(`{"student":{},"term":{},"cognitive":{},"school":{},"comment":null}`))
		require.NoError(t, err)
		assert.False(t, report.Complete())
	})
}

func TestNormalizeStudentShapes(t *testing.T) {
	t.Run("root level", func(t *testing.T) {
		info, err := NormalizeStudent(json.RawMessage(`{"id":"st1","name":"Ada","regNumber":"HA/1","schoolId":"sch1"}`))
		require.NoError(t, err)
		assert.Equal(t, "sch1", info.SchoolID)
	})

	t.Run("nested with sibling schoolId", func(t *testing.T) {
		info, err := NormalizeStudent(json.RawMessage(`{"student":{"id":"st1","name":"Ada"},"schoolId":"sch9"}`))
		require.NoError(t, err)
		assert.Equal(t, "Ada", info.Name)
		assert.Equal(t, "sch9", info.SchoolID)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := NormalizeStudent(json.RawMessage(`{}`))
		assert.Error(t, err)
	})
}

func TestReportCompleteNil(t *testing.T) {
	var r *Report
	assert.False(t, r.Complete())
}
