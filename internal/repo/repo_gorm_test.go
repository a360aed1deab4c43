package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"noteshare/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepoFindUndeletedByID(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email", "deleted_flag"}).
			AddRow(1, "alice", "alice@example.com", false)
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\? AND deleted_flag = \\?").
			WillReturnRows(rows)

		u, err := r.FindUndeletedByID(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "alice", u.Name)
	})

	t.Run("missing maps to nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE id = \\? AND deleted_flag = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		u, err := r.FindUndeletedByID(context.Background(), 2)
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoExistsUndeletedByName(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE name = \\? AND deleted_flag = \\?").
		WithArgs("alice", false).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	ok, err := r.ExistsUndeletedByName(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoSoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewUserRepo(db)

	mock.ExpectExec("UPDATE `users` SET `deleted_flag`=\\?,`updated_at`=\\? WHERE id = \\?").
		WithArgs(true, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.SoftDelete(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoFindUndeletedByIDPreloadsUsers(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	noteRows := sqlmock.NewRows([]string{"id", "title", "contents", "created_by_id", "updated_by_id", "deleted_flag"}).
		AddRow(10, "t", "c", 1, 2, false)
	mock.ExpectQuery("SELECT \\* FROM `notes` WHERE id = \\? AND deleted_flag = \\?").
		WillReturnRows(noteRows)
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "alice"))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "bob"))

	n, err := r.FindUndeletedByID(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, "alice", n.CreatedUser.Name)
	assert.Equal(t, "bob", n.UpdatedUser.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepoSoftDeleteByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	t.Run("bulk update", func(t *testing.T) {
		mock.ExpectExec("UPDATE `notes` SET .+ WHERE id IN \\(\\?,\\?\\)").
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, r.SoftDeleteByIDs(context.Background(), []uint{10, 11}, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids issues no query", func(t *testing.T) {
		require.NoError(t, r.SoftDeleteByIDs(context.Background(), nil, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepoUpdateContents(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewNoteRepo(db)

	mock.ExpectExec("UPDATE `notes` SET .+ WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.UpdateContents(context.Background(), 10, "t", "c", 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepoFindActiveByNoteAndUser(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewPermissionRepo(db)

	rows := sqlmock.NewRows([]string{"id", "note_id", "user_id", "type", "accepted_flag", "deleted_flag"}).
		AddRow(20, 10, 2, `{"readOnly":false,"readWrite":true}`, true, false)
	mock.ExpectQuery("SELECT \\* FROM `user_permissions` WHERE note_id = \\? AND user_id = \\? AND deleted_flag = \\? AND accepted_flag = \\?").
		WithArgs(10, 2, false, true).
		WillReturnRows(rows)

	perms, err := r.FindActiveByNoteAndUser(context.Background(), 10, 2)
	require.NoError(t, err)
	require.Len(t, perms, 1)

	pt, err := perms[0].PermissionType()
	require.NoError(t, err)
	assert.True(t, pt.ReadWrite)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepoSetAccepted(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewPermissionRepo(db)

	mock.ExpectExec("UPDATE `user_permissions` SET `accepted_flag`=\\? WHERE id = \\?").
		WithArgs(true, 20).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.SetAccepted(context.Background(), 20, true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepoSoftDeleteByNote(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewPermissionRepo(db)

	mock.ExpectExec("UPDATE `user_permissions` SET `deleted_flag`=\\? WHERE note_id = \\?").
		WithArgs(true, 10).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, r.SoftDeleteByNote(context.Background(), 10))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreInTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `user_permissions` SET `deleted_flag`=\\? WHERE note_id = \\?").
			WithArgs(true, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.InTx(context.Background(), func(tx domain.Store) error {
			return tx.Permissions().SoftDeleteByNote(context.Background(), 10)
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `user_permissions` SET `deleted_flag`=\\? WHERE note_id = \\?").
			WithArgs(true, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := store.InTx(context.Background(), func(tx domain.Store) error {
			if err := tx.Permissions().SoftDeleteByNote(context.Background(), 10); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
