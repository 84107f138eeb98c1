package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/domain"
	"gestion-bot/pkg/listview"
)

// entity describes one resource for the list/add/update/delete commands.
type entity[T any, F any] struct {
	use         string
	short       string
	// filterField is searched when --filter comes without --filter-field.
	filterField string
	open        func(d *deps) *screen.Screen[T, int64, F]
}

func newEmployeesCmd(load func() (*deps, error)) *cobra.Command {
	return entity[domain.Employee, domain.EmployeeForm]{
		use:         screen.EmployeesName,
		short:       "Administra los empleados",
		filterField: "nombre",
		open: func(d *deps) *screen.Screen[domain.Employee, int64, domain.EmployeeForm] {
			return screen.NewEmployees(d.employees, d.cfg.Language(), time.Now, d.log)
		},
	}.command(load)
}

func newPositionsCmd(load func() (*deps, error)) *cobra.Command {
	return entity[domain.Position, domain.PositionForm]{
		use:         screen.PositionsName,
		short:       "Administra los cargos",
		filterField: "nombre",
		open: func(d *deps) *screen.Screen[domain.Position, int64, domain.PositionForm] {
			return screen.NewPositions(d.positions, d.cfg.Language(), d.log)
		},
	}.command(load)
}

func (e entity[T, F]) command(load func() (*deps, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.use,
		Short: e.short,
	}
	cmd.AddCommand(e.listCmd(load), e.addCmd(load), e.updateCmd(load), e.deleteCmd(load))
	return cmd
}

// withScreen opens a loaded screen for one command run.
func (e entity[T, F]) withScreen(ctx context.Context, load func() (*deps, error), fn func(s *screen.Screen[T, int64, F]) error) error {
	d, err := load()
	if err != nil {
		return err
	}
	defer d.Close()
	s := e.open(d)
	defer s.Leave()
	if err := s.Load(ctx); err != nil {
		return errors.New(domain.UserMessage(err))
	}
	return fn(s)
}

func (e entity[T, F]) listCmd(load func() (*deps, error)) *cobra.Command {
	var (
		filterField string
		filterText  string
		sorts       []string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los registros con filtro y orden opcionales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := listQuery(filterField, filterText, e.filterField, sorts)
			if err != nil {
				return err
			}
			return e.withScreen(cmd.Context(), load, func(s *screen.Screen[T, int64, F]) error {
				if err := s.SetQuery(q); err != nil {
					return err
				}
				rows, err := s.Rows()
				if err != nil {
					return err
				}
				return writeTable(cmd.OutOrStdout(), s.Schema(), rows)
			})
		},
	}
	cmd.Flags().StringVar(&filterField, "filter-field", "", "Campo sobre el que se aplica --filter (por defecto "+e.filterField+")")
	cmd.Flags().StringVar(&filterText, "filter", "", "Texto que debe contener el campo")
	cmd.Flags().StringArrayVar(&sorts, "sort", nil, "Orden campo[:asc|desc]; se admite dos veces")
	return cmd
}

func (e entity[T, F]) addCmd(load func() (*deps, error)) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea un registro a partir de --set campo=valor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parseSets(sets)
			if err != nil {
				return err
			}
			return e.withScreen(cmd.Context(), load, func(s *screen.Screen[T, int64, F]) error {
				s.OpenCreate()
				return e.submit(cmd, s, pairs)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Valor de un campo como campo=valor")
	return cmd
}

func (e entity[T, F]) updateCmd(load func() (*deps, error)) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "update <clave>",
		Short: "Modifica el registro con la clave indicada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Errorf("clave inválida %q", args[0])
			}
			pairs, err := parseSets(sets)
			if err != nil {
				return err
			}
			return e.withScreen(cmd.Context(), load, func(s *screen.Screen[T, int64, F]) error {
				if err := s.OpenEdit(key); err != nil {
					return errors.Wrapf(err, "clave %d", key)
				}
				return e.submit(cmd, s, pairs)
			})
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Valor de un campo como campo=valor")
	return cmd
}

func (e entity[T, F]) deleteCmd(load func() (*deps, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <clave>",
		Short: "Elimina el registro con la clave indicada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Errorf("clave inválida %q", args[0])
			}
			return e.withScreen(cmd.Context(), load, func(s *screen.Screen[T, int64, F]) error {
				if err := s.Delete(cmd.Context(), key); err != nil {
					if errors.Is(err, screen.ErrNotFound) {
						return errors.Wrapf(err, "clave %d", key)
					}
					return errors.New(domain.UserMessage(err))
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Eliminado %d.\n", key)
				return err
			})
		},
	}
}

func (e entity[T, F]) submit(cmd *cobra.Command, s *screen.Screen[T, int64, F], pairs [][2]string) error {
	for _, p := range pairs {
		if err := s.SetField(p[0], p[1]); err != nil {
			return errors.Wrapf(err, "campo %s", p[0])
		}
	}
	rec, err := s.Submit(cmd.Context())
	if err != nil {
		return errors.New(domain.UserMessage(err))
	}
	return writeTable(cmd.OutOrStdout(), s.Schema(), []T{rec})
}

// parseSets splits repeated field=value flags, keeping their order.
func parseSets(sets []string) ([][2]string, error) {
	out := make([][2]string, 0, len(sets))
	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, errors.Errorf("--set %q: se esperaba campo=valor", s)
		}
		out = append(out, [2]string{field, value})
	}
	return out, nil
}

// listQuery builds the list query from the flags, searching fallback when
// only --filter was given.
func listQuery(field, text, fallback string, sorts []string) (listview.Query, error) {
	crit, err := parseSortFlags(sorts)
	if err != nil {
		return listview.Query{}, err
	}
	if field == "" {
		field = fallback
	}
	return listview.Query{FilterField: field, FilterText: text, Sort: crit}, nil
}

func parseSortFlags(sorts []string) (listview.Criteria, error) {
	crit, err := listview.ParseCriteria(strings.Join(sorts, ","))
	if err != nil {
		return nil, errors.Wrap(err, "--sort")
	}
	return crit, nil
}

func writeTable[T any](w io.Writer, schema *listview.Schema[T], rows []T) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fields := schema.Fields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Label
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, rec := range rows {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = f.Get(rec).String()
			if cells[i] == "" {
				cells[i] = "-"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
