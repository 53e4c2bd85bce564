package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rudull/baby-project-manager/internal/calendar"
)

func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := build(t, "Design", "-Sketch", "-Review", "Build")
	_, err := s.SetStartDate(0, "01/01/2024")
	require.NoError(t, err)
	_, err = s.SetDuration(0, "5")
	require.NoError(t, err)
	_, err = s.SetStartDate(1, "02/01/2024")
	require.NoError(t, err)
	_, err = s.SetEndDate(1, "03/01/2024")
	require.NoError(t, err)
	_, err = s.SetDedication(3, 50)
	require.NoError(t, err)
	_, err = s.SetNotes(3, "after design")
	require.NoError(t, err)
	_, err = s.ToggleCollapse(0)
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"project.json", "project.yaml"} {
		t.Run(name, func(t *testing.T) {
			s := sampleStore(t)
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, s.ToFile("demo").Save(path))

			f, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "demo", f.Name)
			assert.Equal(t, SchemaVersion, f.SchemaVersion)
			require.Len(t, f.Tasks, 4)
			assert.Equal(t, "05/01/2024", f.Tasks[0].EndDate)
			assert.True(t, f.Tasks[0].Collapsed)
			assert.True(t, f.Tasks[1].IsSubtask)
			assert.Equal(t, 2, f.Tasks[1].Duration)
			assert.Equal(t, "", f.Tasks[3].StartDate)

			loaded := FromFile(f, s.Engine())
			assert.Equal(t, names(s), names(loaded))
			for i, task := range s.Tasks() {
				assert.Equal(t, task.ID, loaded.Tasks()[i].ID)
			}
			assert.Equal(t, []string{"Design", "Build"}, visibleNames(t, loaded))
			checkInvariants(t, loaded)

			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestSaveJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	require.NoError(t, NewFile("empty").Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"schema_version\": 1,\n  \"name\": \"empty\",\n  \"tasks\": []\n}\n", string(data))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse project file")
}

func TestFromFileRepairsIDs(t *testing.T) {
	f := &File{
		SchemaVersion: SchemaVersion,
		Tasks: []FileTask{
			{ID: "a", Name: "first"},
			{ID: "a", Name: "copy"},
			{Name: "new"},
		},
	}
	s := FromFile(f, calendar.NewEngine(calendar.Weekdays{}))
	checkInvariants(t, s)
	assert.Equal(t, "a", taskAt(t, s, 0).ID)
	pos, ok := s.IndexOf("a")
	require.True(t, ok)
	assert.Equal(t, 0, pos)
}

func TestFromFileIsLenient(t *testing.T) {
	f := &File{
		SchemaVersion: SchemaVersion,
		Tasks: []FileTask{
			{Name: "orphan", IsSubtask: true},
			{Name: "dated", StartDate: "01/01/2024", EndDate: "08/01/2024", Duration: 99},
			{Name: "garbled", StartDate: "yesterday", Duration: 3},
		},
	}
	s := FromFile(f, calendar.NewEngine(calendar.Weekdays{}))
	checkInvariants(t, s)

	orphan := taskAt(t, s, 0)
	assert.False(t, orphan.IsSubtask)

	assert.Equal(t, 6, taskAt(t, s, 1).Duration)

	garbled := taskAt(t, s, 2)
	assert.True(t, garbled.StartDate.IsZero())
	assert.Equal(t, 3, garbled.Duration)
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := sampleStore(t).ToFile("demo")
		result := f.Validate(ValidationOptions{})
		assert.True(t, result.Valid, "%v", result.Errors)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("structural problems", func(t *testing.T) {
		f := &File{
			SchemaVersion: SchemaVersion,
			Tasks: []FileTask{
				{Name: "orphan", IsSubtask: true},
				{Name: "backwards", StartDate: "10/01/2024", EndDate: "02/01/2024", Duration: 1},
				{Name: "child", IsSubtask: true, Collapsed: true},
			},
		}
		result := f.Validate(ValidationOptions{})
		assert.False(t, result.Valid)

		var paths []string
		for _, err := range result.Errors {
			if ve, ok := err.(*ValidationError); ok {
				paths = append(paths, ve.Path)
			}
		}
		assert.Contains(t, paths, "tasks[0].is_subtask")
		assert.Contains(t, paths, "tasks[1].end_date")
		require.Len(t, result.Warnings, 1)
		assert.True(t, strings.HasPrefix(result.Warnings[0], "tasks[2].collapsed"))
	})

	t.Run("schema catches bad values", func(t *testing.T) {
		f := &File{
			SchemaVersion: SchemaVersion,
			Tasks: []FileTask{
				{Name: "a", StartDate: "2024-01-01", Duration: -1},
			},
		}
		result := f.Validate(ValidationOptions{})
		assert.False(t, result.Valid)

		var paths []string
		for _, err := range result.Errors {
			if ve, ok := err.(*ValidationError); ok {
				paths = append(paths, ve.Path)
			}
		}
		assert.Contains(t, paths, "tasks[0].start_date")
		assert.Contains(t, paths, "tasks[0].duration")
	})

	t.Run("wrong schema version", func(t *testing.T) {
		f := NewFile("old")
		f.SchemaVersion = 7
		result := f.Validate(ValidationOptions{})
		assert.False(t, result.Valid)
	})

	t.Run("missing schema path falls back to structural checks", func(t *testing.T) {
		f := NewFile("x")
		result := f.Validate(ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "nope.json")})
		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "schema unavailable")
	})
}

func TestEmbeddedSchema(t *testing.T) {
	schema := Schema()
	assert.Contains(t, string(schema), "\"schema_version\"")
	schema[0] = 'x'
	assert.NotEqual(t, schema[0], Schema()[0])
}
