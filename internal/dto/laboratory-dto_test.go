package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// custodian_id: число — назначить ответственного, null — снять.
func TestUpdateLaboratoryDTO_CustodianJSON(t *testing.T) {
	var withID UpdateLaboratoryDTO
	require.NoError(t, json.Unmarshal([]byte(`{"custodian_id": 7}`), &withID))
	require.True(t, withID.CustodianID.Valid)
	assert.Equal(t, int64(7), withID.CustodianID.Int64)

	var withNull UpdateLaboratoryDTO
	require.NoError(t, json.Unmarshal([]byte(`{"custodian_id": null}`), &withNull))
	assert.False(t, withNull.CustodianID.Valid)
}
