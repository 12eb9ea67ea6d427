package service

import (
	"context"
	"errors"
	"testing"

	caseRepo "medaid_backend/internals/features/cases/cases/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCases struct{ err error }

func (f fakeCases) Stats(context.Context) (*caseRepo.CaseStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &caseRepo.CaseStats{
		ByStatus:                map[string]int64{"pending": 3, "accepted": 2},
		ByPriority:              map[string]int64{"High": 4, "Low": 1},
		PendingVolunteerReviews: 1,
		TotalRaised:             2500,
	}, nil
}

type fakeUsers struct{}

func (fakeUsers) CountActive(context.Context) (int64, int64, error) { return 7, 2, nil }

type fakeDonations struct{}

func (fakeDonations) SumCompleted(context.Context) (int64, error) { return 2500, nil }

func TestStats(t *testing.T) {
	svc := NewDashboardService(fakeCases{}, fakeUsers{}, fakeDonations{})
	out, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.CasesByStatus["pending"])
	assert.Equal(t, int64(4), out.CasesByPriority["High"])
	assert.Equal(t, int64(1), out.PendingVolunteerReviews)
	assert.Equal(t, int64(7), out.ActiveDonors)
	assert.Equal(t, int64(2), out.ActiveVolunteers)
	assert.Equal(t, int64(2500), out.TotalDonated)
	assert.Equal(t, int64(2500), out.TotalRaisedOnCases)
}

func TestStats_PropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewDashboardService(fakeCases{err: boom}, fakeUsers{}, fakeDonations{})
	_, err := svc.Stats(context.Background())
	assert.ErrorIs(t, err, boom)
}
