package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"gestion-bot/internal/domain"
)

// EmployeeService is the employees resource of the console. Drafts are
// parsed and validated here so an invalid form never reaches the API.
type EmployeeService struct {
	Repo  domain.EmployeeRepo
	Async *AsyncService
	Log   logrus.FieldLogger
}

func NewEmployeeService(repo domain.EmployeeRepo, async *AsyncService, log logrus.FieldLogger) *EmployeeService {
	return &EmployeeService{Repo: repo, Async: async, Log: log}
}

func (s *EmployeeService) KeyOf(e domain.Employee) int64 { return e.Cedula }

func (s *EmployeeService) KeyField() string { return "cedula" }

func (s *EmployeeService) Blank() domain.EmployeeForm { return domain.EmployeeForm{} }

func (s *EmployeeService) FormOf(e domain.Employee) domain.EmployeeForm {
	return domain.EmployeeFormOf(e)
}

func (s *EmployeeService) SetField(f *domain.EmployeeForm, field, value string) error {
	return f.Set(field, value)
}

func (s *EmployeeService) input(f domain.EmployeeForm) (domain.EmployeeInput, error) {
	in, err := f.Input()
	if err != nil {
		return in, err
	}
	return in, checkStruct("validar empleado", in)
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return runAsync(ctx, s.Async, s.Repo.GetAllEmployees)
}

func (s *EmployeeService) Create(ctx context.Context, f domain.EmployeeForm) (domain.Employee, error) {
	in, err := s.input(f)
	if err != nil {
		return domain.Employee{}, err
	}
	e, err := runAsync(ctx, s.Async, func(ctx context.Context) (domain.Employee, error) {
		return s.Repo.AddEmployee(ctx, in)
	})
	if err != nil {
		return e, err
	}
	s.Log.WithFields(logrus.Fields{"entity": "empleados", "key": e.Cedula}).Info("[employees] created")
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, cedula int64, f domain.EmployeeForm) (domain.Employee, error) {
	in, err := s.input(f)
	if err != nil {
		return domain.Employee{}, err
	}
	if in.Cedula != cedula {
		return domain.Employee{}, domain.ValidationError("validar empleado", "La cédula no se puede modificar.")
	}
	e, err := runAsync(ctx, s.Async, func(ctx context.Context) (domain.Employee, error) {
		return s.Repo.UpdateEmployee(ctx, cedula, in)
	})
	if err != nil {
		return e, err
	}
	s.Log.WithFields(logrus.Fields{"entity": "empleados", "key": cedula}).Info("[employees] updated")
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, cedula int64) error {
	_, err := runAsync(ctx, s.Async, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Repo.DeleteEmployee(ctx, cedula)
	})
	if err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{"entity": "empleados", "key": cedula}).Info("[employees] deleted")
	return nil
}
