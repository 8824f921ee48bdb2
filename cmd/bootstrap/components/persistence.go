package components

import (
	"templatehub/internal/infra/db"
	"templatehub/internal/infra/readstore"
	"templatehub/internal/infra/uow"
	"templatehub/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork (write side; repositories are tx-scoped inside it)
		uow.NewPostgresUoW,
		// Customer
		fx.Annotate(
			readstore.NewCustomerReadStore,
			fx.As(new(queries.CustomerReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
