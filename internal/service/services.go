package service

import (
	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
)

type Services struct {
	Listings *Listings
	Users    *Users
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	store := s.Config.Store
	if store == nil {
		store = config.DefaultStoreConfig()
	}

	users := NewUsers(repos.Users, store, s.Logger)
	if s.Job != nil {
		users.SetWelcomeQueue(s.Job)
	}

	return &Services{
		Listings: NewListings(repos.Properties, repos.Reservations, store, s.Logger),
		Users:    users,
		Job:      s.Job,
	}
}
