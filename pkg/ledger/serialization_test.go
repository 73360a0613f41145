package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toStringHash simulates what Redis hands back for a written hash.
// go-redis writes booleans as "1"/"0".
func toStringHash(hash map[string]interface{}) map[string]string {
	out := make(map[string]string, len(hash))
	for k, v := range hash {
		switch val := v.(type) {
		case bool:
			if val {
				out[k] = "1"
			} else {
				out[k] = "0"
			}
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

func TestMissionHash_RoundTrip(t *testing.T) {
	max := 3
	original := &MissionRecord{
		Operation:    "alpha",
		Name:         "mining",
		Roster:       map[string][]string{"miner": {"alpha_miner_0"}, "cart": {}},
		BoostEnabled: true,
		Max:          &max,
		Prespawn:     50,
		NextOrdinal:  1,
		RepairQueue:  []string{"road-1", "road-2"},
		PaveTick:     1200,
	}

	hash, err := MissionToHash(original)
	require.NoError(t, err)

	result, err := HashToMission(toStringHash(hash))
	require.NoError(t, err)
	assert.Equal(t, original, result)
}

func TestMissionHash_NoRepairQueueAndNoMax(t *testing.T) {
	original := NewMissionRecord("alpha", "roads")

	hash, err := MissionToHash(original)
	require.NoError(t, err)
	assert.Equal(t, "", hash["repair_queue"])
	assert.Equal(t, "", hash["max"])

	result, err := HashToMission(toStringHash(hash))
	require.NoError(t, err)
	assert.Nil(t, result.RepairQueue)
	assert.Nil(t, result.Max)
	assert.NotNil(t, result.Roster)
}

func TestMissionHash_EmptyQueueIsNotWritten(t *testing.T) {
	m := NewMissionRecord("alpha", "roads")
	m.RepairQueue = []string{}

	hash, err := MissionToHash(m)
	require.NoError(t, err)
	assert.Equal(t, "", hash["repair_queue"], "an exhausted queue must read back as no repair needed")
}

func TestHashToMission_RejectsMissingIdentity(t *testing.T) {
	_, err := HashToMission(map[string]string{"name": "mining"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "operation is required")
}

func TestHashToMission_InvalidRoster(t *testing.T) {
	_, err := HashToMission(map[string]string{
		"operation": "alpha",
		"name":      "mining",
		"roster":    "{not json",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal roster")
}

func TestUnitHash_RoundTrip(t *testing.T) {
	original := &UnitRecord{
		Name:           "community_paver",
		Prepared:       true,
		NotifyDisabled: true,
		PendingBoosts:  []string{"XGH2O"},
		AppliedBoosts:  []string{"XZHO2"},
		Partner:        "alpha_cart_1",
		Employer:       "alphamining",
		LastEmployed:   4410,
		HasLoad:        true,
	}

	hash, err := UnitToHash(original)
	require.NoError(t, err)

	result, err := HashToUnit(toStringHash(hash))
	require.NoError(t, err)
	assert.Equal(t, original, result)
}

func TestHashToUnit_RequiresName(t *testing.T) {
	_, err := HashToUnit(map[string]string{"prepared": "1"})
	assert.Error(t, err)
}
