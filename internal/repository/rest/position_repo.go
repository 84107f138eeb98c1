package rest

import (
	"context"
	"net/http"
	"strconv"

	"gestion-bot/internal/domain"
)

type RestPositionRepo struct {
	c *Client
}

func NewRestPositionRepo(c *Client) *RestPositionRepo {
	return &RestPositionRepo{c: c}
}

func (r *RestPositionRepo) GetAllPositions(ctx context.Context) ([]domain.Position, error) {
	var out []domain.Position
	err := r.c.do(ctx, call{
		resource: "cargos", op: "list",
		method: http.MethodGet, path: "/get/cargos",
		out: &out,
	})
	return out, err
}

func (r *RestPositionRepo) AddPosition(ctx context.Context, in domain.PositionInput) (domain.Position, error) {
	var out domain.Position
	err := r.c.do(ctx, call{
		resource: "cargos", op: "add",
		method: http.MethodPost, path: "/add/cargos",
		body: in, out: &out,
	})
	return out, err
}

func (r *RestPositionRepo) UpdatePosition(ctx context.Context, id int64, in domain.PositionInput) (domain.Position, error) {
	var out domain.Position
	err := r.c.do(ctx, call{
		resource: "cargos", op: "update",
		method: http.MethodPut, path: "/put/cargos/" + strconv.FormatInt(id, 10),
		body: in, out: &out,
	})
	return out, err
}

func (r *RestPositionRepo) DeletePosition(ctx context.Context, id int64) error {
	return r.c.do(ctx, call{
		resource: "cargos", op: "delete",
		method: http.MethodDelete, path: "/delete/cargos/" + strconv.FormatInt(id, 10),
	})
}
