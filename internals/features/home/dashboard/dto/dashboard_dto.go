package dto

type DashboardStats struct {
	CasesByStatus           map[string]int64 `json:"cases_by_status"`
	CasesByPriority         map[string]int64 `json:"cases_by_priority"`
	PendingVolunteerReviews int64            `json:"pending_volunteer_reviews"`
	ActiveDonors            int64            `json:"active_donors"`
	ActiveVolunteers        int64            `json:"active_volunteers"`
	TotalDonated            int64            `json:"total_donated"`
	TotalRaisedOnCases      int64            `json:"total_raised_on_cases"`
}
