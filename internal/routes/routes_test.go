package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lab-inventory/internal/integrations/inventoryapi"
	"lab-inventory/internal/repositories"
	"lab-inventory/internal/views"
	"lab-inventory/pkg/config"
	"lab-inventory/pkg/customvalidator"
	"lab-inventory/pkg/export"
	"lab-inventory/pkg/utils"
	appwebsocket "lab-inventory/pkg/websocket"
)

type RouterTestSuite struct {
	suite.Suite
	echo     *echo.Echo
	upstream *fakeUpstream
	server   *httptest.Server
	cookie   *http.Cookie
	cancel   context.CancelFunc
}

func testConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{
			PollInterval:     time.Hour,
			PollMaxBackoff:   time.Hour,
			AutoCloseDelay:   2 * time.Second,
			PrimaryMarker:    "MySQL",
			FallbackMarker:   "REDIS",
			ExportSheetTitle: "Inventario Global",
		},
		Detail: config.DetailConfig{
			AddDefaultAcquisitionDate:    "2026-01-01",
			UpdateDefaultAcquisitionDate: "2024-01-01",
			UpdateDefaultArea:            "General",
			HistoryDatePlaceholder:       "2026-02-15",
		},
		Session: config.SessionConfig{Store: "memory", TTL: time.Hour, CookieName: "lab_session"},
	}
}

func (s *RouterTestSuite) SetupTest() {
	s.upstream = newFakeUpstream()
	s.server = httptest.NewServer(s.upstream.Handler())

	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))

	s.echo = echo.New()
	s.echo.Validator = utils.NewValidator(v)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	nop := zap.NewNop()
	api := inventoryapi.NewWithClient(s.server.URL, &http.Client{Timeout: 2 * time.Second}, nop)
	err := InitRouter(ctx, s.echo, api, repositories.NewMemoryCacheRepository(),
		&Loggers{Main: nop, Laboratory: nop, Report: nop}, testConfig())
	s.Require().NoError(err)
	s.cookie = nil
}

func (s *RouterTestSuite) TearDownTest() {
	s.cancel()
	s.server.Close()
}

// do sends a request carrying the suite session cookie and keeps the one
// issued on the first response.
func (s *RouterTestSuite) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "lab_session" {
			s.cookie = c
		}
	}
	return rec
}

func (s *RouterTestSuite) post(target string, form url.Values) {
	if form == nil {
		form = url.Values{}
	}
	rec := s.do(http.MethodPost, target, form)
	s.Require().Equal(http.StatusSeeOther, rec.Code, rec.Body.String())
}

func (s *RouterTestSuite) page(target string) string {
	rec := s.do(http.MethodGet, target, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	return rec.Body.String()
}

func (s *RouterTestSuite) TestRootRedirectsToLaboratories() {
	rec := s.do(http.MethodGet, "/", nil)
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/laboratorios", rec.Header().Get(echo.HeaderLocation))
	s.NotNil(s.cookie)
}

func (s *RouterTestSuite) TestLaboratoryList() {
	body := s.page("/laboratorios")
	s.Contains(body, "Laboratorio de Redes")
	s.Contains(body, "/laboratorios/42")
}

func (s *RouterTestSuite) TestLaboratoryDetail() {
	body := s.page("/laboratorios/42")
	s.Contains(body, "Laboratorio de Redes")
	s.Contains(body, "PC-01")
	s.NotContains(body, views.MsgLabEmpty)
}

func (s *RouterTestSuite) TestUnknownLaboratoryShowsLoadError() {
	body := s.page("/laboratorios/99")
	s.Contains(body, views.MsgLabLoadFailed)
}

func (s *RouterTestSuite) TestDeleteLastItemEmptiesLaboratory() {
	s.page("/laboratorios/42")

	s.post("/laboratorios/42/items/1/delete", nil)
	body := s.page("/laboratorios/42")
	s.Contains(body, "ELIMINAR la máquina")
	s.Empty(s.upstream.calls("delete-lab-item"))

	s.post("/laboratorios/42/items/1/delete/confirm", nil)
	s.Len(s.upstream.calls("delete-lab-item"), 1)

	body = s.page("/laboratorios/42")
	s.Contains(body, views.MsgItemDeleted)
	s.Contains(body, views.MsgLabEmpty)
}

func (s *RouterTestSuite) TestDeleteConfirmWithoutRequestIsRefused() {
	s.page("/laboratorios/42")
	s.post("/laboratorios/42/items/1/delete/confirm", nil)

	s.Empty(s.upstream.calls("delete-lab-item"))
	s.Contains(s.page("/laboratorios/42"), views.MsgConfirmationMissing)
}

func (s *RouterTestSuite) TestAddLabItemUsesDefaultDate() {
	s.page("/laboratorios/42")
	s.post("/laboratorios/42/modal/add", nil)
	s.post("/laboratorios/42/items", url.Values{
		"code":   {"PC-02"},
		"type":   {"Computadora"},
		"status": {"Operativa"},
		"area":   {"Fila 2"},
	})

	calls := s.upstream.calls("add-item")
	s.Require().Len(calls, 1)
	s.Equal("2026-01-01", calls[0]["acquisition_date"])
	s.Equal("PC-02", calls[0]["code"])

	body := s.page("/laboratorios/42")
	s.Contains(body, views.MsgItemSaved)
	s.Contains(body, "PC-02")
}

func (s *RouterTestSuite) TestUnknownModalKindIsBadRequest() {
	s.page("/laboratorios/42")
	rec := s.do(http.MethodPost, "/laboratorios/42/modal/settings", url.Values{})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/reportes/modal/history/close", url.Values{})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestReportOnPrimary() {
	body := s.page("/reportes")
	s.Contains(body, "PC-100")
	s.Contains(body, "IMP-7")
	s.NotContains(body, "disabled>Editar")
	s.Contains(body, `class="banner" hidden`)
}

func (s *RouterTestSuite) TestReportSearchKeepsQuery() {
	body := s.page("/reportes?q=imp")
	s.Contains(body, "IMP-7")
	s.NotContains(body, "PC-100")

	rec := s.do(http.MethodPost, "/reportes/modal/add", url.Values{"q": {"imp"}})
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/reportes?q=imp", rec.Header().Get(echo.HeaderLocation))
}

func (s *RouterTestSuite) TestReportSaveFallsBackToRedis() {
	s.upstream.createSource = "REDIS_BACKUP"

	s.page("/reportes")
	s.post("/reportes/modal/add", nil)
	s.post("/reportes/items", url.Values{"code": {"PC-9"}, "type": {"PC"}, "status": {"Operativa"}, "area": {"Sala 3"}})

	body := s.page("/reportes")
	s.Contains(body, "BD SATURADA")
	s.Contains(body, "PC-9")
	s.Contains(body, `http-equiv="refresh"`)
}

func (s *RouterTestSuite) TestReportAddStaysAvailableOnFallbackSource() {
	s.upstream.setSource("REDIS_CACHE")
	s.upstream.createSource = "REDIS_BACKUP"

	body := s.page("/reportes")
	s.Contains(body, `<button type="submit">Agregar equipo</button>`)
	s.Contains(body, "disabled>Editar")

	s.post("/reportes/modal/add", nil)
	s.post("/reportes/items", url.Values{"code": {"PC-9"}, "type": {"PC"}, "status": {"Operativa"}, "area": {"Sala 3"}})
	s.Len(s.upstream.calls("create-global"), 1)

	body = s.page("/reportes")
	s.Contains(body, "BD SATURADA")
	s.Contains(body, "PC-9")
}

func (s *RouterTestSuite) TestReportReadOnlyRefusesWrites() {
	s.upstream.setSource("REDIS_CACHE")

	body := s.page("/reportes")
	s.Contains(body, "disabled>Editar")
	s.Contains(body, "disabled>Eliminar")
	s.Contains(body, `<button type="submit">Agregar equipo</button>`)
	s.Contains(body, views.MsgEmergencyTitle)
	s.NotContains(body, `class="banner" hidden`)

	s.post("/reportes/items/1/delete", nil)
	s.Contains(s.page("/reportes"), views.MsgReadOnly)

	s.post("/reportes/items/1/delete/confirm", nil)
	s.Empty(s.upstream.calls("delete-global"))
}

func (s *RouterTestSuite) TestReportDeleteOnPrimary() {
	s.page("/reportes")
	s.post("/reportes/items/2/delete", nil)
	s.Contains(s.page("/reportes"), views.MsgGlobalDeletePrompt)

	s.post("/reportes/items/2/delete/confirm", nil)
	s.Len(s.upstream.calls("delete-global"), 1)
	s.Contains(s.page("/reportes"), views.MsgGlobalDeleted)
}

func (s *RouterTestSuite) TestExportSpreadsheet() {
	rec := s.do(http.MethodGet, "/reportes/export.xlsx?q=pc", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(export.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "inventario_")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	s.Require().NoError(err)
	defer f.Close()

	rows, err := f.GetRows("Inventario Global")
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(rows), 2)
	s.Equal("ID", rows[0][0])
	s.Equal("PC-100", rows[1][2])
}

func (s *RouterTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/healthz", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var health utils.HTTPResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &health))
	s.True(health.Status)

	s.page("/laboratorios/42")
	rec = s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "lab_inventory_upstream_requests_total")
}

func (s *RouterTestSuite) TestLiveReportPushesSnapshot() {
	app := httptest.NewServer(s.echo)
	defer app.Close()

	s.page("/reportes")
	header := http.Header{}
	header.Set("Cookie", s.cookie.Name+"="+s.cookie.Value)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(app.URL, "http")+"/reportes/ws", header)
	s.Require().NoError(err)
	defer conn.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(3 * time.Second)))
	var env struct {
		Type    string                     `json:"type"`
		Payload appwebsocket.ReportPayload `json:"payload"`
	}
	s.Require().NoError(conn.ReadJSON(&env))
	s.Equal(appwebsocket.TypeReportSnapshot, env.Type)
	s.Equal("MySQL", env.Payload.Source)
	s.False(env.Payload.ReadOnly)
	s.Contains(env.Payload.HTML, "PC-100")
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
