package bootstrap

import (
	barRepo "github.com/muhammadchandra19/chart-data/internal/infrastructure/questdb/bar"
)

// Repository is the repository for the chart data service.
type Repository struct {
	BarRepository barRepo.BarRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.BarRepository = barRepo.NewRepository(b.QuestDB, b.Config.Chart.BarTable, b.Classifier.Location())
}
