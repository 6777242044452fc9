package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordRepo_Values(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT keyword FROM blocked_keywords`).
		WillReturnRows(mock.NewRows([]string{"keyword"}).AddRow("scary").AddRow("violence"))

	words, err := NewKeywordRepo(mock).Values(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"scary", "violence"}, words)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeywordRepo_InsertIfAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`ON CONFLICT \(keyword\) DO NOTHING`).
		WithArgs("scary").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`ON CONFLICT \(keyword\) DO NOTHING`).
		WithArgs("scary").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := NewKeywordRepo(mock)
	added, err := repo.InsertIfAbsent(context.Background(), "scary")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.InsertIfAbsent(context.Background(), "scary")
	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}
