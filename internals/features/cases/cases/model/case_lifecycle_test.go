package model

import (
	"testing"
	"time"

	"medaid_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmitted() *CaseModel {
	c := &CaseModel{CaseID: uuid.New()}
	c.InitSubmitted()
	return c
}

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestFormatCaseNumber(t *testing.T) {
	assert.Equal(t, "CASE-2025-00001", FormatCaseNumber(2025, 1))
	assert.Equal(t, "CASE-2025-00042", FormatCaseNumber(2025, 42))
	assert.Equal(t, "CASE-2026-12345", FormatCaseNumber(2026, 12345))
}

func TestStage(t *testing.T) {
	vol := uuid.New()
	tests := []struct {
		name  string
		build func(c *CaseModel)
		want  Stage
	}{
		{name: "fresh case", build: func(c *CaseModel) {}, want: StageSubmitted},
		{name: "volunteer assigned", build: func(c *CaseModel) { c.CaseVolunteerID = &vol }, want: StageVolunteerAssigned},
		{name: "volunteer approved", build: func(c *CaseModel) {
			c.CaseVolunteerID = &vol
			c.CaseVolunteerApprovalStatus = VolunteerApprovalApproved
		}, want: StageVolunteerApproved},
		{name: "volunteer rejected", build: func(c *CaseModel) {
			c.CaseVolunteerID = &vol
			c.CaseVolunteerApprovalStatus = VolunteerApprovalRejected
		}, want: StageVolunteerRejected},
		{name: "accepted", build: func(c *CaseModel) { c.CaseStatus = CaseStatusAccepted }, want: StageAdminAccepted},
		{name: "rejected", build: func(c *CaseModel) { c.CaseStatus = CaseStatusRejected }, want: StageAdminRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newSubmitted()
			tt.build(c)
			assert.Equal(t, tt.want, c.Stage())
		})
	}
}

func TestAssignVolunteer(t *testing.T) {
	c := newSubmitted()
	first, second := uuid.New(), uuid.New()

	require.NoError(t, c.AssignVolunteer(first))
	require.NoError(t, c.ApplyVolunteerReview(first, DecisionReject, []string{ReasonDiseaseInfo}, now))
	assert.Equal(t, StageVolunteerRejected, c.Stage())

	require.NoError(t, c.AssignVolunteer(second))
	assert.Equal(t, second, *c.CaseVolunteerID)
	assert.Equal(t, VolunteerApprovalPending, c.CaseVolunteerApprovalStatus)
	assert.Empty(t, c.CaseVolunteerRejectionReasons)
	assert.Nil(t, c.CaseVolunteerReviewedAt)

	assert.True(t, apperr.Is(c.AssignVolunteer(uuid.Nil), apperr.KindValidation))
}

func TestAssignVolunteer_TerminalCase(t *testing.T) {
	c := newSubmitted()
	require.NoError(t, c.ApplyAdminReview(uuid.New(), DecisionReject, now))

	err := c.AssignVolunteer(uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindPrecondition))
}

func TestVolunteerReview(t *testing.T) {
	vol := uuid.New()

	t.Run("reject with empty reasons is a validation error", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		err := c.ApplyVolunteerReview(vol, DecisionReject, []string{}, now)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, VolunteerApprovalPending, c.CaseVolunteerApprovalStatus)
	})

	t.Run("reject with unknown reason is a validation error", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		err := c.ApplyVolunteerReview(vol, DecisionReject, []string{"Looks fake"}, now)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("reject with known reason", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		err := c.ApplyVolunteerReview(vol, DecisionReject, []string{ReasonPersonalInfo, ReasonPersonalInfo}, now)
		require.NoError(t, err)
		assert.Equal(t, VolunteerApprovalRejected, c.CaseVolunteerApprovalStatus)
		assert.Equal(t, []string{ReasonPersonalInfo}, []string(c.CaseVolunteerRejectionReasons))
		assert.Equal(t, now, *c.CaseVolunteerReviewedAt)
	})

	t.Run("approve clears reasons", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		require.NoError(t, c.ApplyVolunteerReview(vol, DecisionReject, []string{ReasonFinancialInfo}, now))
		require.NoError(t, c.ApplyVolunteerReview(vol, DecisionApprove, nil, now))
		assert.Equal(t, VolunteerApprovalApproved, c.CaseVolunteerApprovalStatus)
		assert.Empty(t, c.CaseVolunteerRejectionReasons)
	})

	t.Run("other volunteer is not authorized", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		err := c.ApplyVolunteerReview(uuid.New(), DecisionApprove, nil, now)
		assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	})

	t.Run("unassigned case is not authorized", func(t *testing.T) {
		c := newSubmitted()
		err := c.ApplyVolunteerReview(vol, DecisionApprove, nil, now)
		assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	})
}

func TestAdminReview(t *testing.T) {
	admin := uuid.New()
	vol := uuid.New()

	t.Run("approve without volunteer", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.ApplyAdminReview(admin, DecisionApprove, now))
		assert.Equal(t, CaseStatusAccepted, c.CaseStatus)
		assert.True(t, c.CaseIsVerified)
		assert.Equal(t, admin, *c.CaseAdminReviewedBy)
	})

	t.Run("approve with pending volunteer fails", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		err := c.ApplyAdminReview(admin, DecisionApprove, now)
		assert.True(t, apperr.Is(err, apperr.KindPrecondition))
		assert.Equal(t, CaseStatusPending, c.CaseStatus)
		assert.False(t, c.CaseIsVerified)
	})

	t.Run("approve with rejecting volunteer fails", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		require.NoError(t, c.ApplyVolunteerReview(vol, DecisionReject, []string{ReasonDiseaseInfo}, now))
		err := c.ApplyAdminReview(admin, DecisionApprove, now)
		assert.True(t, apperr.Is(err, apperr.KindPrecondition))
	})

	t.Run("approve after volunteer approval", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		require.NoError(t, c.ApplyVolunteerReview(vol, DecisionApprove, nil, now))
		require.NoError(t, c.ApplyAdminReview(admin, DecisionApprove, now))
		assert.Equal(t, StageAdminAccepted, c.Stage())
	})

	t.Run("reject has no volunteer precondition", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.AssignVolunteer(vol))
		require.NoError(t, c.ApplyAdminReview(admin, DecisionReject, now))
		assert.Equal(t, CaseStatusRejected, c.CaseStatus)
		assert.False(t, c.CaseIsVerified)
	})

	t.Run("terminal case cannot be reviewed again", func(t *testing.T) {
		c := newSubmitted()
		require.NoError(t, c.ApplyAdminReview(admin, DecisionApprove, now))
		err := c.ApplyAdminReview(admin, DecisionReject, now)
		assert.True(t, apperr.Is(err, apperr.KindPrecondition))
		assert.Equal(t, CaseStatusAccepted, c.CaseStatus)

		err = c.ApplyVolunteerReview(vol, DecisionApprove, nil, now)
		assert.Error(t, err)
	})
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision(" Approve ")
	require.NoError(t, err)
	assert.Equal(t, DecisionApprove, d)

	_, err = ParseDecision("maybe")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
