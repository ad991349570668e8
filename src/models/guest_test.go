package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuestTrimsNames(t *testing.T) {
	guest := NewGuest("  Ada ", "\tLovelace\n")

	assert.Equal(t, "Ada", guest.FirstName)
	assert.Equal(t, "Lovelace", guest.LastName)
	assert.False(t, guest.Attending)
	assert.Empty(t, guest.ID)
	assert.Equal(t, "Ada Lovelace", guest.FullName())
}

func TestCleanNameNormalizesComposedForms(t *testing.T) {
	decomposed := "Zoe\u0301"
	composed := "Zo\u00e9"

	assert.Equal(t, composed, CleanName(" "+decomposed+" "))
}

func TestCleanNameAllowsEmpty(t *testing.T) {
	assert.Equal(t, "", CleanName("   "))
}

func TestGuestJSONUsesWireKeys(t *testing.T) {
	body, err := json.Marshal(NewGuest("Ada", "Lovelace"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"firstName":"Ada","lastName":"Lovelace","attending":false}`, string(body))

	var guest Guest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"g-1","firstName":"Grace","lastName":"Hopper","attending":true}`), &guest))
	assert.Equal(t, Guest{ID: "g-1", FirstName: "Grace", LastName: "Hopper", Attending: true}, guest)
}

func TestPartitionByAttendance(t *testing.T) {
	guests := []Guest{
		{ID: "1", FirstName: "Ada", Attending: true},
		{ID: "2", FirstName: "Grace"},
		{ID: "3", FirstName: "Ada", Attending: true},
		{ID: "4", FirstName: "Alan"},
	}

	attending, notAttending := PartitionByAttendance(guests)

	assert.Equal(t, []Guest{guests[0], guests[2]}, attending)
	assert.Equal(t, []Guest{guests[1], guests[3]}, notAttending)
	assert.Len(t, append(attending, notAttending...), len(guests))
}

func TestPartitionByAttendanceEmpty(t *testing.T) {
	attending, notAttending := PartitionByAttendance(nil)

	assert.NotNil(t, attending)
	assert.NotNil(t, notAttending)
	assert.Empty(t, attending)
	assert.Empty(t, notAttending)
}

func TestNewGuestEventOmitsPayloadOnDelete(t *testing.T) {
	guest := Guest{ID: "g-1", FirstName: "Ada", LastName: "Lovelace"}

	inserted := NewGuestEvent(OperationInsert, guest)
	assert.Equal(t, "guest", inserted.Type)
	assert.Equal(t, "g-1", inserted.GuestID)
	assert.Equal(t, guest, inserted.Payload)

	deleted := NewGuestEvent(OperationDelete, guest)
	assert.Nil(t, deleted.Payload)
	assert.Equal(t, "g-1", deleted.GuestID)
}
