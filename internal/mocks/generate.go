// Package mocks provides mock implementations for testing hireline services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/core. The generated files are not
// committed; regenerate them after interface changes with:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(job, nil)
//
// Hand-written doubles for the auth ports live in the auth subpackage; they
// are simpler to set up for the session flow tests and need no codegen.
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/hireline/hireline-api/internal/core UserRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_repository_mock.go github.com/hireline/hireline-api/internal/core JobRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=application_repository_mock.go github.com/hireline/hireline-api/internal/core ApplicationRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=gig_repository_mock.go github.com/hireline/hireline-api/internal/core GigRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ticket_repository_mock.go github.com/hireline/hireline-api/internal/core TicketRepository
