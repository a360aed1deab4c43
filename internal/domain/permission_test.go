package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionTypeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  PermissionType
	}{
		{"read only", PermissionType{ReadOnly: true}},
		{"read write", PermissionType{ReadWrite: true}},
		{"zero", PermissionType{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UserPermission{Type: tt.typ.Encode()}
			got, err := p.PermissionType()
			require.NoError(t, err)
			assert.Equal(t, tt.typ, got)
		})
	}
}

func TestPermissionTypeEncodeShape(t *testing.T) {
	assert.JSONEq(t, `{"readOnly":false,"readWrite":true}`, PermissionType{ReadWrite: true}.Encode())
}

func TestPermissionTypeCorrupt(t *testing.T) {
	for _, raw := range []string{"", "{", "plain text", `"readWrite"`} {
		p := UserPermission{Type: raw}
		_, err := p.PermissionType()
		var die *DataIntegrityError
		require.ErrorAs(t, err, &die, "raw=%q", raw)
		assert.Contains(t, die.Error(), "undecodable permission type")
	}
}

func TestTransactionErrorWrapping(t *testing.T) {
	cause := errors.New("deadlock")
	err := &TransactionError{Op: "delete note", Err: cause}
	assert.Equal(t, "failed to delete note: deadlock", err.Error())
	assert.ErrorIs(t, err, cause)
}
