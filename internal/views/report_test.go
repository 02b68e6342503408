package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lab-inventory/internal/entities"
)

func TestFilterItems(t *testing.T) {
	items := []entities.Item{
		{ID: "1", Name: "PC-100"},
		{ID: "2", Code: "pc-200"},
		{ID: "3", Code: "IMP-01"},
	}

	tests := []struct {
		search string
		want   []entities.ItemID
	}{
		{search: "", want: []entities.ItemID{"1", "2", "3"}},
		{search: "pc", want: []entities.ItemID{"1", "2"}},
		{search: "PC-2", want: []entities.ItemID{"2"}},
		{search: "imp", want: []entities.ItemID{"3"}},
		{search: "zzz", want: []entities.ItemID{}},
		{search: " ", want: []entities.ItemID{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := FilterItems(items, tt.search)
			ids := make([]entities.ItemID, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Len(t, items, 3)
	assert.Equal(t, "PC-100", items[0].Name)
}

func TestSaveMessageFollowsSource(t *testing.T) {
	r := entities.SourceResolver{PrimaryMarker: "MySQL", FallbackMarker: "REDIS"}

	assert.Equal(t, &Flash{Kind: FlashSuccess, Text: MsgSavedPrimary}, SaveMessage(r.Resolve("MySQL")))
	assert.Equal(t, &Flash{Kind: FlashWarning, Text: MsgSavedFallback}, SaveMessage(r.Resolve("Redis")))
	assert.Equal(t, &Flash{Kind: FlashWarning, Text: MsgSavedFallback}, SaveMessage(r.Resolve("REDIS_BACKUP")))
}

func TestAddDialogAutoCloses(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewReportState()
	s.Open(ModalAdd, "")
	s.Form.Code = "PC-9"

	s.AddAccepted(entities.DataSource{Label: "MySQL", Primary: true}, now, 2*time.Second)
	assert.Equal(t, 2*time.Second, s.AutoCloseIn(now))

	assert.False(t, s.Tick(now.Add(time.Second)))
	assert.True(t, s.IsOpen(ModalAdd))
	assert.NotNil(t, s.SaveStatus)

	assert.True(t, s.Tick(now.Add(2*time.Second)))
	assert.False(t, s.IsOpen(ModalAdd))
	assert.Nil(t, s.SaveStatus)
	assert.Equal(t, DefaultGlobalItemForm(), s.Form)
	assert.Zero(t, s.AutoCloseIn(now))
}

func TestAddFailureKeepsDialogOpen(t *testing.T) {
	now := time.Now()
	s := NewReportState()
	s.Open(ModalAdd, "")

	s.AddFailed(MsgCriticalError)

	assert.False(t, s.Tick(now.Add(time.Hour)))
	assert.True(t, s.IsOpen(ModalAdd))
	assert.Equal(t, FlashError, s.SaveStatus.Kind)
}

func TestReadOnlyGate(t *testing.T) {
	rows := []entities.Item{{ID: "1", Code: "PC-1"}}

	primary := ReportSnapshot{Source: entities.DataSource{Label: "MySQL", Primary: true}, Rows: rows}
	fallback := ReportSnapshot{Source: entities.DataSource{Label: "REDIS_CACHE", Fallback: true}, Rows: rows}
	empty := ReportSnapshot{Source: entities.DataSource{Label: "REDIS_EMPTY", Fallback: true}}

	assert.False(t, primary.ReadOnly())
	assert.True(t, fallback.ReadOnly())
	assert.True(t, empty.ReadOnly())
	assert.True(t, empty.Empty())
}

func TestOpenEditMapsNameToCode(t *testing.T) {
	s := NewReportState()
	s.OpenEdit(entities.Item{ID: "5", Name: "PC-5", Type: "PC", Status: "Operativa", Area: "Sala 2"})

	assert.True(t, s.IsOpen(ModalEdit))
	assert.Equal(t, entities.ItemID("5"), s.Selected)
	assert.Equal(t, "PC-5", s.Edit.Code)
	assert.Equal(t, "Sala 2", s.Edit.Area)
}
