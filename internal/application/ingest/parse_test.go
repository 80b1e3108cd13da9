package ingest_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
	"github.com/jhoicas/semaforo-stock/internal/domain"
)

const header = "code,name,category,current_stock,min_stock,max_stock,unit_cost\n"

func TestParseCSV_FilasValidas(t *testing.T) {
	src := header +
		"P001,Produto A,Eletrônicos,150,50,300,25.50\n" +
		"P002,Produto B,Eletrônicos,30,40,200,15.75\n"

	res, err := ingest.ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, 0, res.Dropped)

	p := res.Products[0]
	assert.Equal(t, "P001", p.Code)
	assert.Equal(t, "Produto A", p.Name)
	assert.Equal(t, "Eletrônicos", p.Category)
	assert.Equal(t, int64(150), p.CurrentStock)
	assert.Equal(t, int64(50), p.MinStock)
	assert.Equal(t, int64(300), p.MaxStock)
	assert.True(t, decimal.RequireFromString("25.50").Equal(p.UnitCost))
}

func TestParseCSV_ColumnasFaltantes(t *testing.T) {
	src := "code,name,category,current_stock\nP001,A,X,1\n"

	res, err := ingest.ParseCSV(strings.NewReader(src))
	require.Error(t, err)
	assert.Nil(t, res)

	var se *domain.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, []string{"min_stock", "max_stock", "unit_cost"}, se.Missing)
}

func TestParseCSV_FuenteVacia(t *testing.T) {
	_, err := ingest.ParseCSV(strings.NewReader(""))
	var se *domain.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Missing, 7)
}

func TestParseCSV_Coercion(t *testing.T) {
	src := header +
		"P001,A,X,abc,-5,12.9,n/a\n" + // no numérico y negativo → 0; decimales se truncan
		",SinCodigo,X,1,1,1,1\n" +
		"P003,,X,1,1,1,1\n" +
		"P004,B,X,10,5,20,\"1.234,50\"\n"

	res, err := ingest.ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Dropped)
	require.Len(t, res.Products, 2)

	p := res.Products[0]
	assert.Equal(t, int64(0), p.CurrentStock)
	assert.Equal(t, int64(0), p.MinStock)
	assert.Equal(t, int64(12), p.MaxStock)
	assert.True(t, p.UnitCost.IsZero())

	assert.True(t, decimal.RequireFromString("1234.50").Equal(res.Products[1].UnitCost))
}

func TestParseCSV_EnterosFueraDeRango(t *testing.T) {
	src := header +
		"P001,A,X,99999999999999999999,1e30,9223372036854775807,1\n" +
		"P002,B,X,9223372036854775807.9,9223372036854775808,5,1\n"

	res, err := ingest.ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Products, 2)

	p := res.Products[0]
	assert.Equal(t, int64(0), p.CurrentStock)
	assert.Equal(t, int64(0), p.MinStock)
	assert.Equal(t, int64(math.MaxInt64), p.MaxStock, "el tope exacto se conserva")

	p = res.Products[1]
	assert.Equal(t, int64(math.MaxInt64), p.CurrentStock, "los decimales se truncan antes del control de rango")
	assert.Equal(t, int64(0), p.MinStock)
}

func TestParseCSV_AliasYSeparadorPuntoYComa(t *testing.T) {
	src := "\ufeffCodigo;Nome;Categoria;Estoque_Atual;Estoque_Min;Estoque_Max;Custo_Unitario\n" +
		"P005;Produto E;Casa;45;50;180;42,80\n"

	res, err := ingest.ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "P005", res.Products[0].Code)
	assert.True(t, decimal.RequireFromString("42.80").Equal(res.Products[0].UnitCost))
}

func TestParseCSV_CodigoRepetidoGanaUltimaFila(t *testing.T) {
	src := header +
		"P001,Viejo,X,1,1,1,1\n" +
		"P002,Otro,X,1,1,1,1\n" +
		"P001,Nuevo,X,9,1,1,1\n"

	res, err := ingest.ParseCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "Nuevo", res.Products[0].Name)
	assert.Equal(t, int64(9), res.Products[0].CurrentStock)
}

func TestParseXLSX_PrimeraHoja(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"code", "name", "category", "current_stock", "min_stock", "max_stock", "unit_cost"},
		{"P007", "Produto G", "Livros", 75, 25, 150, 12.5},
		{"", "vacía", "", 0, 0, 0, 0},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	res, err := ingest.ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, "P007", res.Products[0].Code)
	assert.Equal(t, int64(75), res.Products[0].CurrentStock)
	assert.True(t, decimal.RequireFromString("12.5").Equal(res.Products[0].UnitCost))
}

func TestParse_FormatoDesconocido(t *testing.T) {
	_, err := ingest.Parse("ods", strings.NewReader(header))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, ingest.FormatXLSX, ingest.FormatFromFilename("stock.XLSX"))
	assert.Equal(t, ingest.FormatCSV, ingest.FormatFromFilename("stock.csv"))
	assert.Equal(t, ingest.FormatCSV, ingest.FormatFromFilename("stock"))
}
