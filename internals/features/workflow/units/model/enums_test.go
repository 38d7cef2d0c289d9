package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhashaflow_backend/internals/helpers/apperror"
)

func TestParseKind(t *testing.T) {
	cases := map[string]ContentKind{
		"activity":           KindActivity,
		" Daily ":            KindDaily,
		"daily_prediction":   KindDaily,
		"tenday":             KindTenDay,
		"ten_day_prediction": KindTenDay,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("weekly")
	assert.ErrorIs(t, err, apperror.ErrInvalidKind)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestParseLanguage(t *testing.T) {
	for _, lang := range AllLanguages {
		got, err := ParseLanguage(string(lang))
		require.NoError(t, err)
		assert.Equal(t, lang, got)
	}
	got, err := ParseLanguage(" HI ")
	require.NoError(t, err)
	assert.Equal(t, LangHindi, got)

	_, err = ParseLanguage("ta")
	assert.ErrorIs(t, err, apperror.ErrInvalidLanguage)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("Approve")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, d.Target())

	d, err = ParseDecision("reassign")
	require.NoError(t, err)
	assert.Equal(t, StatusWorking, d.Target())

	_, err = ParseDecision("reject")
	assert.ErrorIs(t, err, apperror.ErrInvalidDecision)
}

func TestEnumScanRejectsUnknown(t *testing.T) {
	var s SlotStatus
	require.NoError(t, s.Scan([]byte("inreview")))
	assert.Equal(t, StatusInReview, s)
	assert.ErrorIs(t, s.Scan("done"), apperror.ErrInvalidStatus)

	var l Language
	assert.ErrorIs(t, l.Scan(nil), apperror.ErrValidation)

	_, err := Language("xx").Value()
	assert.ErrorIs(t, err, apperror.ErrInvalidLanguage)
}

func TestHasName(t *testing.T) {
	assert.True(t, KindActivity.HasName())
	assert.False(t, KindDaily.HasName())
	assert.False(t, KindTenDay.HasName())
}
