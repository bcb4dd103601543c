package queries_test

import (
	"context"
	"testing"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetOrderQueryHandlerTestSuite exercises the single-order read model
// against a real PostgreSQL database.
type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	repo      *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.repo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestOrderReadBack() {
	wash, err := order.NewItem("wash", "shirts", 4, decimal.RequireFromString("50.00"))
	suite.Require().NoError(err)
	iron, err := order.NewItem("iron", "trousers", 2, decimal.RequireFromString("30.00"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Ravi Kumar", "+919876543210",
		[]order.Item{wash, iron})
	suite.Require().NoError(err)
	suite.Require().NoError(o.RecordPayment(decimal.RequireFromString("100.00")))
	suite.Require().NoError(suite.repo.Add(context.Background(), o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(o.ID()))
	suite.Equal("Ravi Kumar", resp.CustomerName)
	suite.Equal("+919876543210", resp.CustomerPhone)
	suite.Equal("received", resp.Status)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("260.00")), resp.TotalAmount.String())
	suite.True(resp.PaidAmount.Equal(decimal.RequireFromString("100.00")), resp.PaidAmount.String())
	suite.True(resp.Balance.Equal(decimal.RequireFromString("160.00")), resp.Balance.String())

	suite.Require().Len(resp.Items, 2)
	// Sorted by service type: iron before wash.
	suite.Equal("iron", resp.Items[0].ServiceType)
	suite.True(resp.Items[0].LineTotal.Equal(decimal.RequireFromString("60.00")))
	suite.Equal("wash", resp.Items[1].ServiceType)
	suite.True(resp.Items[1].LineTotal.Equal(decimal.RequireFromString("200.00")))
}

func (suite *GetOrderQueryHandlerTestSuite) TestUnknownOrder() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandlerIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
