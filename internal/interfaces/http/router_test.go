package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pallets-api/internal/application/dto"
	appledger "github.com/jhoicas/Pallets-api/internal/application/ledger"
	"github.com/jhoicas/Pallets-api/internal/application/reports"
	"github.com/jhoicas/Pallets-api/internal/domain/entity"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Pallets-api/internal/infrastructure/token"
	apphttp "github.com/jhoicas/Pallets-api/internal/interfaces/http"
	"github.com/jhoicas/Pallets-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre un almacén en memoria, con el códec
// QR y el generador de etiquetas reales.
func buildTestApp() (*fiber.App, *testutil.MemStore) {
	store := testutil.NewMemStore()
	codec := token.NewCodec(128)

	applyUC := appledger.NewApplyTransactionUseCase(store)
	registerUC := appledger.NewRegisterUnitUseCase(store, codec)
	scanUC := appledger.NewScanUseCase(codec, applyUC, store)
	reportUC := reports.NewReportUseCase(store, store)
	pdfReportUC := reports.NewPDFReportUseCase(reportUC, pdf.NewMarotoReportGenerator())
	labelUC := reports.NewLabelUseCase(store, codec, pdf.NewMarotoLabelGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RegisterUC:  registerUC,
		ApplyUC:     applyUC,
		ScanUC:      scanUC,
		ReportUC:    reportUC,
		PDFReportUC: pdfReportUC,
		LabelUC:     labelUC,
	})
	return app, store
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerUnit da de alta una estiba vía API y devuelve la respuesta completa.
func registerUnit(t *testing.T, app *fiber.App, label, company string, qty int64) dto.RegisterUnitResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/units", dto.RegisterUnitRequest{
		Label:           label,
		Company:         company,
		InitialQuantity: qty,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.RegisterUnitResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_AltaYConsultaDeEstiba(t *testing.T) {
	app, _ := buildTestApp()

	created := registerUnit(t, app, "Cajas", "ACME", 50)
	assert.NotEmpty(t, created.Unit.UnitID)
	assert.Equal(t, int64(50), created.Unit.Quantity)
	assert.Equal(t, entity.LevelRaw, created.Unit.Level)
	assert.Equal(t, entity.StatusPending, created.Unit.Status)
	assert.NotEmpty(t, created.TokenPNG, "el alta debe devolver el token PNG")

	resp := doJSON(t, app, http.MethodGet, "/api/units/"+created.Unit.UnitID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[dto.UnitResponse](t, resp)
	assert.Equal(t, created.Unit.UnitID, got.UnitID)
	assert.Equal(t, "Cajas", got.Label)

	resp = doJSON(t, app, http.MethodGet, "/api/units", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[dto.UnitListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Count)
}

func TestAPI_AltaInvalida(t *testing.T) {
	app, _ := buildTestApp()

	// Sin label ni company
	resp := doJSON(t, app, http.MethodPost, "/api/units", dto.RegisterUnitRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Fecha límite con formato incorrecto
	resp = doJSON(t, app, http.MethodPost, "/api/units", dto.RegisterUnitRequest{
		Label: "Cajas", Company: "ACME", Deadline: "15/09/2026",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos del libro
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_TransaccionesSobreEstiba(t *testing.T) {
	app, _ := buildTestApp()
	id := registerUnit(t, app, "Cajas", "ACME", 50).Unit.UnitID

	// Entrada: 50 + 20 = 70
	resp := doJSON(t, app, http.MethodPost, "/api/units/"+id+"/transactions", dto.TransactionRequest{
		Operation: entity.OpEntry, Quantity: 20,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unit := decodeBody[dto.UnitResponse](t, resp)
	assert.Equal(t, int64(70), unit.Quantity)

	// Salida mayor que el stock: rechazada sin tocar nada
	resp = doJSON(t, app, http.MethodPost, "/api/units/"+id+"/transactions", dto.TransactionRequest{
		Operation: entity.OpExit, Quantity: 100,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	// Salida exacta: 70 - 70 = 0
	resp = doJSON(t, app, http.MethodPost, "/api/units/"+id+"/transactions", dto.TransactionRequest{
		Operation: entity.OpExit, Quantity: 70,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unit = decodeBody[dto.UnitResponse](t, resp)
	assert.Equal(t, int64(0), unit.Quantity)

	// Cambio de estado: fila con delta cero en el libro
	resp = doJSON(t, app, http.MethodPost, "/api/units/"+id+"/transactions", dto.TransactionRequest{
		Operation: entity.OpStatusChange, Status: entity.StatusCompleted,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Historial: alta + entrada + salida + cambio de estado
	resp = doJSON(t, app, http.MethodGet, "/api/units/"+id+"/logs", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	history := decodeBody[dto.UnitHistoryResponse](t, resp)
	require.Len(t, history.Logs, 4)
	assert.Equal(t, entity.OpInitialEntry, history.Logs[0].Operation)
	assert.Equal(t, entity.OpStatusChange, history.Logs[3].Operation)
	assert.Equal(t, int64(0), history.Logs[3].QuantityChange)
}

func TestAPI_ErroresMapeados(t *testing.T) {
	app, _ := buildTestApp()

	cases := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:   "estiba inexistente",
			method: http.MethodGet, path: "/api/units/NOE-XIS-260820-ZZZZ",
			wantStatus: http.StatusNotFound, wantCode: "UNKNOWN_UNIT",
		},
		{
			name:   "salida sobre lote desconocido",
			method: http.MethodPost, path: "/api/units/NOE-XIS-260820-ZZZZ/transactions",
			body:       dto.TransactionRequest{Operation: entity.OpExit, Quantity: 5},
			wantStatus: http.StatusNotFound, wantCode: "UNKNOWN_UNIT",
		},
		{
			name:   "operación desconocida",
			method: http.MethodPost, path: "/api/units/NOE-XIS-260820-ZZZZ/transactions",
			body:       dto.TransactionRequest{Operation: "teleport", Quantity: 5},
			wantStatus: http.StatusBadRequest, wantCode: "VALIDATION",
		},
		{
			name:   "initial_entry no se pide por fuera",
			method: http.MethodPost, path: "/api/units/NOE-XIS-260820-ZZZZ/transactions",
			body:       dto.TransactionRequest{Operation: entity.OpInitialEntry, Quantity: 5},
			wantStatus: http.StatusBadRequest, wantCode: "VALIDATION",
		},
		{
			name:   "token ilegible",
			method: http.MethodPost, path: "/api/scan",
			body:       dto.ScanRequest{Data: "esto no es un token"},
			wantStatus: http.StatusUnprocessableEntity, wantCode: "TOKEN_DECODE",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			body := decodeBody[dto.ErrorResponse](t, resp)
			assert.Equal(t, tc.wantCode, body.Code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escaneo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDeEscaneo(t *testing.T) {
	app, _ := buildTestApp()

	payload, err := json.Marshal(entity.TokenPayload{
		UnitID:   "ACM-CAJ-260820-AAAA",
		Label:    "Cajas",
		Quantity: 50,
	})
	require.NoError(t, err)
	data := string(payload)

	// Antes del alta: el token se lee pero el lote no está registrado
	resp := doJSON(t, app, http.MethodPost, "/api/scan", dto.ScanRequest{Data: data})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scan := decodeBody[dto.ScanResponse](t, resp)
	assert.False(t, scan.Registered)
	assert.Equal(t, "ACM-CAJ-260820-AAAA", scan.Payload.UnitID)
	assert.Nil(t, scan.Unit)

	// Entrada por escaneo: da de alta con la cantidad de la carga
	resp = doJSON(t, app, http.MethodPost, "/api/scan/transactions", dto.ScanProcessRequest{
		Data: data, Operation: entity.OpEntry,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unit := decodeBody[dto.UnitResponse](t, resp)
	assert.Equal(t, int64(50), unit.Quantity)

	// Ahora el escaneo la encuentra
	resp = doJSON(t, app, http.MethodPost, "/api/scan", dto.ScanRequest{Data: data})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scan = decodeBody[dto.ScanResponse](t, resp)
	assert.True(t, scan.Registered)
	require.NotNil(t, scan.Unit)
	assert.Equal(t, int64(50), scan.Unit.Quantity)

	// Salida por escaneo: 50 - 50 = 0
	resp = doJSON(t, app, http.MethodPost, "/api/scan/transactions", dto.ScanProcessRequest{
		Data: data, Operation: entity.OpExit,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unit = decodeBody[dto.UnitResponse](t, resp)
	assert.Equal(t, int64(0), unit.Quantity)

	// El escaneo solo admite entry/exit
	resp = doJSON(t, app, http.MethodPost, "/api/scan/transactions", dto.ScanProcessRequest{
		Data: data, Operation: entity.OpStockAdjust,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Token y etiqueta
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_TokenYEtiqueta(t *testing.T) {
	app, _ := buildTestApp()
	id := registerUnit(t, app, "Cajas", "ACME", 50).Unit.UnitID

	resp := doJSON(t, app, http.MethodGet, "/api/units/"+id+"/token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "image/png")
	img, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, []byte{0x89, 'P', 'N', 'G'}))

	resp = doJSON(t, app, http.MethodGet, "/api/units/"+id+"/label", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/pdf")
	doc, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Conciliación y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_VerificacionDelLibro(t *testing.T) {
	app, store := buildTestApp()
	id := registerUnit(t, app, "Cajas", "ACME", 50).Unit.UnitID

	resp := doJSON(t, app, http.MethodGet, "/api/ledger/verify", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report := decodeBody[dto.VerifyReportResponse](t, resp)
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.Checked)

	// Adulterar la cantidad almacenada por fuera del motor
	tampered, err := store.GetByID(id)
	require.NoError(t, err)
	tampered.Quantity = 99
	store.Seed(*tampered)

	resp = doJSON(t, app, http.MethodGet, "/api/ledger/verify/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeBody[dto.VerifyResultResponse](t, resp)
	assert.False(t, result.Consistent)
	assert.Equal(t, int64(99), result.StoredQuantity)
	assert.Equal(t, int64(50), result.ReplayedQuantity)
}

func TestAPI_ReporteCSV(t *testing.T) {
	app, _ := buildTestApp()
	id1 := registerUnit(t, app, "Cajas", "ACME", 50).Unit.UnitID
	id2 := registerUnit(t, app, "Tambores", "Bodega Sur", 15).Unit.UnitID

	resp := doJSON(t, app, http.MethodGet, "/api/reports/units?format=csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	body := string(raw)
	assert.True(t, strings.HasPrefix(body, "unit_id,label,company,"))
	assert.Contains(t, body, id1)
	assert.Contains(t, body, id2)
}

func TestAPI_ReportePDF(t *testing.T) {
	app, _ := buildTestApp()
	registerUnit(t, app, "Cajas", "ACME", 50)
	registerUnit(t, app, "Tambores", "Bodega Sur", 15)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/units?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/pdf")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")

	doc, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestAPI_DashboardSummary(t *testing.T) {
	app, _ := buildTestApp()
	registerUnit(t, app, "Cajas", "ACME", 50)
	registerUnit(t, app, "Tambores", "Bodega Sur", 15)

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decodeBody[dto.DashboardSummaryResponse](t, resp)
	assert.Len(t, summary.RecentUnits, 2)
	assert.Len(t, summary.RecentTransactions, 2)
}

// El listado pagina y respeta los filtros de la consulta.
func TestAPI_ListadoConFiltros(t *testing.T) {
	app, _ := buildTestApp()
	registerUnit(t, app, "Cajas", "ACME", 50)
	registerUnit(t, app, "Tambores", "Bodega Sur", 15)
	registerUnit(t, app, "Láminas", "ACME", 5)

	resp := doJSON(t, app, http.MethodGet, "/api/units?critical_below=20&order_by=quantity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[dto.UnitListResponse](t, resp)
	require.Len(t, list.Items, 2)
	assert.Equal(t, int64(5), list.Items[0].Quantity)
	assert.Equal(t, int64(15), list.Items[1].Quantity)

	resp = doJSON(t, app, http.MethodGet, "/api/units?limit=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeBody[dto.UnitListResponse](t, resp)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Limit)

	// Filtro inválido → 400
	resp = doJSON(t, app, http.MethodGet, "/api/units?status=Desconocido", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
