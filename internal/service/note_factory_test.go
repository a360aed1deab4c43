package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteshare/internal/domain"
)

func TestPreviewContents(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{"empty", "", ""},
		{"short", "hello", "hello"},
		{"exact limit", strings.Repeat("a", 175), strings.Repeat("a", 175)},
		{"one over limit", strings.Repeat("a", 176), strings.Repeat("a", 175)},
		{"long", strings.Repeat("ab", 500), strings.Repeat("ab", 87) + "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, previewContents(tt.contents))
		})
	}
}

func TestPreviewContentsMultibyte(t *testing.T) {
	contents := strings.Repeat("日", 200)
	got := previewContents(contents)
	assert.Equal(t, 175, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("日", 175), got)
}

func TestPreviewContentsIdempotent(t *testing.T) {
	once := previewContents(strings.Repeat("x", 1000))
	assert.Equal(t, once, previewContents(once))
}

func TestNewPreviewNotesDeletable(t *testing.T) {
	owner := domain.User{ID: 1, Name: "alice"}
	owned := []domain.Note{
		{ID: 10, Title: "mine", CreatedUser: owner, UpdatedUser: owner},
	}
	sharedNote := domain.Note{ID: 11, Title: "theirs", CreatedUser: owner, UpdatedUser: owner}
	shared := []domain.UserPermission{
		{ID: 20, NoteID: 11, UserID: 2, Note: sharedNote, Type: domain.PermissionType{ReadOnly: true}.Encode()},
		{ID: 21, NoteID: 11, UserID: 2, Note: sharedNote, Type: domain.PermissionType{ReadWrite: true}.Encode()},
	}

	previews, err := newPreviewNotes(owned, shared)
	require.NoError(t, err)
	require.Len(t, previews, 3)

	assert.True(t, previews[0].DeletableFlag, "owned note is deletable")
	assert.False(t, previews[1].DeletableFlag, "read-only share is not deletable")
	assert.True(t, previews[2].DeletableFlag, "read-write share is deletable")
	assert.Equal(t, "alice", previews[1].CreatedBy)
}

func TestNewPreviewNotesCorruptPermission(t *testing.T) {
	shared := []domain.UserPermission{
		{ID: 20, NoteID: 11, UserID: 2, Type: "not json"},
	}
	_, err := newPreviewNotes(nil, shared)
	var die *domain.DataIntegrityError
	require.ErrorAs(t, err, &die)
}

func TestNewNoteDetailSharedUsersVisibility(t *testing.T) {
	creator := domain.User{ID: 1, Name: "alice"}
	note := &domain.Note{ID: 10, Title: "t", Contents: "c", CreatedByID: 1, CreatedUser: creator, UpdatedUser: creator}
	perms := []domain.UserPermission{
		{ID: 20, NoteID: 10, UserID: 2, Type: domain.PermissionType{ReadWrite: true}.Encode(), AcceptedFlag: true},
	}

	asCreator, err := newNoteDetail(note, perms, 1)
	require.NoError(t, err)
	assert.True(t, asCreator.UserIsCreator)
	require.Len(t, asCreator.SharedUsers, 1)
	assert.Equal(t, uint(20), asCreator.SharedUsers[0].PermissionID)
	assert.Equal(t, uint(2), asCreator.SharedUsers[0].UserID)
	assert.True(t, asCreator.SharedUsers[0].Type.ReadWrite)

	asGrantee, err := newNoteDetail(note, perms, 2)
	require.NoError(t, err)
	assert.False(t, asGrantee.UserIsCreator)
	assert.Empty(t, asGrantee.SharedUsers, "grantees never see the share list")
	assert.NotNil(t, asGrantee.SharedUsers)
}
