package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecklistFilter_KeepsListedPlayers(t *testing.T) {
	sc, _ := newTestSyncContext(t, testConfig())
	filter := NewChecklistFilter(sc, NewBrandMap(map[string]string{"Bet1": "Bet One"}))

	result := filter.Filter([]UpdatePlayer{
		{Brand: "Bet1", UserID: "b001"},
		{Brand: "Bet1", UserID: "b002"},
	}, []PlayerCheckList{{ClientUserID: "b001", BrandName: "Bet One"}})

	if assert.Len(t, result, 1) {
		assert.Equal(t, "b001", result[0].UserID)
	}
}

func TestChecklistFilter_Matching(t *testing.T) {
	brands := NewBrandMap(map[string]string{"Bet1": "Bet One", "Bet2": "Bet Two"})
	tests := []struct {
		name      string
		player    UpdatePlayer
		checklist []PlayerCheckList
		want      bool
	}{
		{"brand ignores case", UpdatePlayer{Brand: "Bet1", UserID: "b001"}, []PlayerCheckList{{ClientUserID: "b001", BrandName: "BET ONE"}}, true},
		{"user id is exact", UpdatePlayer{Brand: "Bet1", UserID: "b001"}, []PlayerCheckList{{ClientUserID: "B001", BrandName: "Bet One"}}, false},
		{"other brand", UpdatePlayer{Brand: "Bet1", UserID: "b001"}, []PlayerCheckList{{ClientUserID: "b001", BrandName: "Bet Two"}}, false},
		{"unmapped brand", UpdatePlayer{Brand: "Bet3", UserID: "b001"}, []PlayerCheckList{{ClientUserID: "b001", BrandName: "Bet3"}}, false},
		{"same user in two brands", UpdatePlayer{Brand: "Bet2", UserID: "x1"}, []PlayerCheckList{{ClientUserID: "x1", BrandName: "Bet One"}, {ClientUserID: "x1", BrandName: "Bet Two"}}, true},
		{"empty checklist", UpdatePlayer{Brand: "Bet1", UserID: "b001"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, _ := newTestSyncContext(t, testConfig())
			result := NewChecklistFilter(sc, brands).Filter([]UpdatePlayer{tt.player}, tt.checklist)
			assert.Equal(t, tt.want, len(result) == 1)
		})
	}
}

func TestChecklistFilter_PreservesOrder(t *testing.T) {
	sc, _ := newTestSyncContext(t, testConfig())
	filter := NewChecklistFilter(sc, NewBrandMap(map[string]string{"Bet1": "Bet One", "Bet2": "Bet Two"}))
	checklist := []PlayerCheckList{
		{ClientUserID: "c002", BrandName: "Bet Two"},
		{ClientUserID: "b003", BrandName: "Bet One"},
		{ClientUserID: "b001", BrandName: "Bet One"},
	}

	result := filter.Filter([]UpdatePlayer{
		{Brand: "Bet1", UserID: "b001"},
		{Brand: "Bet1", UserID: "b002"},
		{Brand: "Bet1", UserID: "b003"},
		{Brand: "Bet2", UserID: "c002"},
	}, checklist)

	var ids []string
	for _, p := range result {
		ids = append(ids, p.UserID)
	}
	assert.Equal(t, []string{"b001", "b003", "c002"}, ids)
}
