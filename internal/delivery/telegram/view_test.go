package telegram

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"gestion-bot/internal/app/screen"
	"gestion-bot/internal/app/service"
	"gestion-bot/internal/domain"
)

type memPositions struct {
	list []domain.Position
}

func (m *memPositions) GetAllPositions(ctx context.Context) ([]domain.Position, error) {
	return m.list, nil
}

func (m *memPositions) AddPosition(ctx context.Context, in domain.PositionInput) (domain.Position, error) {
	p := domain.Position{ID: int64(len(m.list) + 1), Name: in.Name, Level: in.Level, BaseSalary: in.BaseSalary}
	m.list = append(m.list, p)
	return p, nil
}

func (m *memPositions) UpdatePosition(ctx context.Context, id int64, in domain.PositionInput) (domain.Position, error) {
	return domain.Position{ID: id, Name: in.Name, Level: in.Level, BaseSalary: in.BaseSalary}, nil
}

func (m *memPositions) DeletePosition(ctx context.Context, id int64) error { return nil }

func loadedPositionView(t *testing.T) view {
	t.Helper()
	log, _ := test.NewNullLogger()
	repo := &memPositions{list: []domain.Position{
		{ID: 1, Name: "Analista", Level: 2, BaseSalary: decimal.NewFromInt(900)},
		{ID: 2, Name: "Gerente", Level: 4, BaseSalary: decimal.RequireFromString("1500.50")},
	}}
	svc := service.NewPositionService(repo, nil, log)
	v := newPositionView(screen.NewPositions(svc, language.Spanish, log))
	require.NoError(t, v.Load(context.Background()))
	return v
}

func TestPositionView_RenderListAndFilter(t *testing.T) {
	v := loadedPositionView(t)

	body, markup := v.Render("")
	require.Contains(t, body, "<b>Cargos</b>")
	require.Contains(t, body, "Analista")
	require.Contains(t, body, "1500.50")
	require.Contains(t, body, "2 registro(s).")
	require.NotNil(t, markup)

	require.NoError(t, v.SetFilterField("nombre"))
	v.SetFilterText("ger")
	body, _ = v.Render("")
	require.NotContains(t, body, "Analista")
	require.Contains(t, body, "Filtro: Nombre contiene «ger»")
}

func TestPositionView_SortIndicatorInBody(t *testing.T) {
	v := loadedPositionView(t)
	require.NoError(t, v.ToggleSort("nivel"))
	require.NoError(t, v.ToggleSort("nivel"))
	body, _ := v.Render("")
	require.Contains(t, body, "Orden: Nivel")
	require.Error(t, v.ToggleSort("desconocido"))
}

func TestPositionView_EditFlow(t *testing.T) {
	v := loadedPositionView(t)
	require.False(t, v.FormOpen())

	require.Error(t, v.OpenEdit("abc"))
	require.NoError(t, v.OpenEdit("2"))
	require.True(t, v.FormOpen())
	require.True(t, v.FieldLocked("id"))
	require.False(t, v.FieldLocked("nombre"))

	form, _ := v.RenderForm("")
	require.Contains(t, form, "Editar cargo")

	require.NoError(t, v.SetField("nombre", "Gerente general"))
	require.NoError(t, v.Submit(context.Background()))
	require.False(t, v.FormOpen())

	row, _, err := v.RenderRow("2")
	require.NoError(t, err)
	require.Contains(t, row, "Gerente general")
}

func TestPositionView_CreateValidationKeepsForm(t *testing.T) {
	v := loadedPositionView(t)
	v.OpenCreate()
	require.NoError(t, v.SetField("nombre", "Pasante"))

	err := v.Submit(context.Background())
	require.True(t, domain.IsKind(err, domain.KindValidation))
	require.True(t, v.FormOpen())

	form, _ := v.RenderForm("")
	require.Contains(t, form, "Nuevo cargo")
	require.Contains(t, form, "⚠️")
}

func TestPositionHint(t *testing.T) {
	names := []string{"Analista", "Gerente", "Asistente"}
	require.Empty(t, positionHint("", names))
	require.Empty(t, positionHint("gerente", names))
	require.Contains(t, positionHint("Analist", names), "Analista")
}

func TestSplitScreen(t *testing.T) {
	name, rest := splitScreen("cargos|12")
	require.Equal(t, "cargos", name)
	require.Equal(t, "12", rest)

	name, rest = splitScreen("empleados")
	require.Equal(t, "empleados", name)
	require.Empty(t, rest)
}
