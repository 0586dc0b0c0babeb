package infrastructure

import (
	"lottobot/application"
	"lottobot/database"
	"lottobot/domain/interfaces"
	"lottobot/repository"
)

// UnitOfWorkFactory implements the application.UnitOfWorkFactory interface.
// Each unit pairs a database transaction with a transactional event publisher
// so events flush only after the transaction commits.
type UnitOfWorkFactory struct {
	repoFactory interface {
		CreateWithPublisher(eventPublisher interfaces.EventPublisher) application.UnitOfWork
	}
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
	}
}

// Create creates a new UnitOfWork with a fresh transactional event publisher
func (f *UnitOfWorkFactory) Create() application.UnitOfWork {
	transactionalPublisher := NewNATSTransactionalPublisher(f.eventPublisher)

	repoUow := f.repoFactory.CreateWithPublisher(transactionalPublisher)

	return &unitOfWork{
		inner:                  repoUow,
		transactionalPublisher: transactionalPublisher,
	}
}
