package rest

import (
	"context"
	"net/http"
	"strconv"

	"gestion-bot/internal/domain"
)

type RestEmployeeRepo struct {
	c *Client
}

func NewRestEmployeeRepo(c *Client) *RestEmployeeRepo {
	return &RestEmployeeRepo{c: c}
}

func (r *RestEmployeeRepo) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.c.do(ctx, call{
		resource: "empleados", op: "list",
		method: http.MethodGet, path: "/get/empleados",
		out: &out,
	})
	return out, err
}

func (r *RestEmployeeRepo) AddEmployee(ctx context.Context, in domain.EmployeeInput) (domain.Employee, error) {
	var out domain.Employee
	err := r.c.do(ctx, call{
		resource: "empleados", op: "add",
		method: http.MethodPost, path: "/add/empleados",
		body: in, out: &out,
	})
	return out, err
}

func (r *RestEmployeeRepo) UpdateEmployee(ctx context.Context, cedula int64, in domain.EmployeeInput) (domain.Employee, error) {
	var out domain.Employee
	err := r.c.do(ctx, call{
		resource: "empleados", op: "update",
		method: http.MethodPut, path: "/put/empleados/" + strconv.FormatInt(cedula, 10),
		body: in, out: &out,
	})
	return out, err
}

func (r *RestEmployeeRepo) DeleteEmployee(ctx context.Context, cedula int64) error {
	return r.c.do(ctx, call{
		resource: "empleados", op: "delete",
		method: http.MethodDelete, path: "/delete/empleados/" + strconv.FormatInt(cedula, 10),
	})
}
