package service

import (
	"context"

	caseRepo "medaid_backend/internals/features/cases/cases/repository"
	"medaid_backend/internals/features/home/dashboard/dto"
)

type CaseCounter interface {
	Stats(ctx context.Context) (*caseRepo.CaseStats, error)
}

type UserCounter interface {
	CountActive(ctx context.Context) (donors, volunteers int64, err error)
}

type DonationCounter interface {
	SumCompleted(ctx context.Context) (int64, error)
}

type DashboardService struct {
	cases     CaseCounter
	users     UserCounter
	donations DonationCounter
}

func NewDashboardService(cases CaseCounter, users UserCounter, donations DonationCounter) *DashboardService {
	return &DashboardService{cases: cases, users: users, donations: donations}
}

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	cs, err := s.cases.Stats(ctx)
	if err != nil {
		return nil, err
	}
	donors, volunteers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	donated, err := s.donations.SumCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStats{
		CasesByStatus:           cs.ByStatus,
		CasesByPriority:         cs.ByPriority,
		PendingVolunteerReviews: cs.PendingVolunteerReviews,
		ActiveDonors:            donors,
		ActiveVolunteers:        volunteers,
		TotalDonated:            donated,
		TotalRaisedOnCases:      cs.TotalRaised,
	}, nil
}
