package details

import (
	"time"

	areaService "medaid_backend/internals/features/cases/areas/service"
	caseRepo "medaid_backend/internals/features/cases/cases/repository"
	caseService "medaid_backend/internals/features/cases/cases/service"
	donationRepo "medaid_backend/internals/features/donations/donations/repository"
	donationService "medaid_backend/internals/features/donations/donations/service"
	dashboardService "medaid_backend/internals/features/home/dashboard/service"
	notifRepo "medaid_backend/internals/features/home/notifications/repository"
	notifService "medaid_backend/internals/features/home/notifications/service"
	authService "medaid_backend/internals/features/users/auth/service"
	userRepo "medaid_backend/internals/features/users/user/repository"
	userService "medaid_backend/internals/features/users/user/service"
	helperOSS "medaid_backend/internals/helpers/oss"

	"gorm.io/gorm"
)

// Deps is everything the feature services are built from.
type Deps struct {
	DB        *gorm.DB
	Resolver  *areaService.Resolver
	Uploader  helperOSS.Uploader
	JWTSecret string
	JWTTTL    time.Duration
}

// Services are shared by the HTTP routes, the cron job and the CLI commands.
type Services struct {
	Cases     *caseService.CaseService
	Donations *donationService.DonationService
	Auth      *authService.AuthService
	Users     *userService.UserService
	Dashboard *dashboardService.DashboardService
}

func BuildServices(d Deps) *Services {
	cases := caseRepo.NewCaseRepository(d.DB)
	users := userRepo.NewUserRepository(d.DB)
	donations := donationRepo.NewDonationRepository(d.DB)
	notifier := notifService.NewNotifier(notifRepo.NewNotificationRepository(d.DB))

	return &Services{
		Cases:     caseService.NewCaseService(cases, users, d.Resolver, d.Uploader, notifier),
		Donations: donationService.NewDonationService(donations, notifier),
		Auth:      authService.NewAuthService(users, cases, d.JWTSecret, d.JWTTTL),
		Users:     userService.NewUserService(users),
		Dashboard: dashboardService.NewDashboardService(cases, users, donations),
	}
}
