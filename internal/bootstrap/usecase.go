package bootstrap

import (
	"github.com/muhammadchandra19/chart-data/internal/domain/bar"
	"github.com/muhammadchandra19/chart-data/internal/usecase/barrange"
	"github.com/muhammadchandra19/chart-data/internal/usecase/chart"
	"github.com/muhammadchandra19/chart-data/internal/usecase/history"
)

// Usecase is the usecase for the chart data service.
type Usecase struct {
	BarRange *barrange.Usecase
	History  bar.Loader
	Chart    bar.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() error {
	sessions, err := b.Config.Chart.SessionSet()
	if err != nil {
		return err
	}

	b.Usecase.BarRange = barrange.NewUsecase(b.Repository.BarRepository, b.Logger)
	b.Usecase.History = history.NewUsecase(b.Repository.BarRepository, b.Usecase.BarRange, b.Classifier, sessions, b.Logger)
	b.Usecase.Chart = chart.NewUsecase(b.Usecase.History, b.Publisher, b.Classifier, b.Logger)
	return nil
}
