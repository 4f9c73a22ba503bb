package controllers

import (
	"context"
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/repositories"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/bind"
	"github.com/shashiranjanraj/dinehub/pkg/graphql"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

// catalogQueries adapts the repositories and order service to the
// graphql.Queries contract.
type catalogQueries struct {
	menu      *repositories.MenuRepository
	mealPlans *repositories.MealPlanRepository
	orders    *services.OrderService
}

func (q *catalogQueries) AvailableMenu(ctx context.Context) ([]models.MenuItem, error) {
	return q.menu.FindAvailable(ctx)
}

func (q *catalogQueries) AvailableMealPlans(ctx context.Context) ([]models.MealPlan, error) {
	return q.mealPlans.FindAvailable(ctx)
}

func (q *catalogQueries) Orders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return q.orders.List(ctx, filter)
}

// GraphQLController serves the read-only query endpoint.
type GraphQLController struct {
	schema gql.Schema
}

func NewGraphQLController(menu *repositories.MenuRepository, mealPlans *repositories.MealPlanRepository, orders *services.OrderService) (*GraphQLController, error) {
	schema, err := graphql.NewSchema(&catalogQueries{menu: menu, mealPlans: mealPlans, orders: orders})
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Query handles POST /api/graphql.
func (c *GraphQLController) Query(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if errs, err := bind.JSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result := gql.Do(gql.Params{
		Schema:         c.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})
	response.Success(w, result)
}
