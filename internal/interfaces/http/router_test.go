package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/prisma-api/internal/application/analytics"
	"github.com/jhoicas/prisma-api/internal/application/apptest"
	"github.com/jhoicas/prisma-api/internal/application/auth"
	"github.com/jhoicas/prisma-api/internal/application/blog"
	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/application/sales"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/internal/domain/seo"
	apphttp "github.com/jhoicas/prisma-api/internal/interfaces/http"
	"github.com/jhoicas/prisma-api/pkg/config"
	pkgjwt "github.com/jhoicas/prisma-api/pkg/jwt"
	"github.com/jhoicas/prisma-api/pkg/logger"
)

type fakePDF struct{}

func (fakePDF) GenerateMonthlyReport(string, *dto.DashboardSummaryDTO) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type apiFixture struct {
	app      *fiber.App
	store    *apptest.Store
	storage  *apptest.Storage
	notifier *apptest.Notifier
	prov     *portal.CredentialProvisioner
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	st := apptest.NewStore()
	f := &apiFixture{store: st, storage: apptest.NewStorage(), notifier: &apptest.Notifier{}}
	log := logger.Nop()
	site := seo.Site{Name: "Prisma Avaliações", Domain: "prismaavaliacoes.com.br"}

	f.prov = portal.NewCredentialProvisioner(apptest.CustomerRepo{S: st}, apptest.TxRunner{S: st}, log)
	dashboard := appanalytics.NewDashboardUseCase(apptest.AnalyticsRepo{S: st}, apptest.SaleRepo{S: st}, "Dashboard Prisma")

	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(apptest.UserRepo{S: st}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 30, Issuer: testIssuer}),
		CustomerUC: sales.NewCustomerUseCase(apptest.CustomerRepo{S: st}),
		SaleUC:     sales.NewSaleUseCase(apptest.SaleRepo{S: st}, apptest.CustomerRepo{S: st}, f.storage, nil, log),
		PortalUC: portal.NewUseCase(portal.Deps{
			Customers: apptest.CustomerRepo{S: st},
			Sales:     apptest.SaleRepo{S: st},
			Users:     apptest.UserRepo{S: st},
			Tx:        apptest.TxRunner{S: st},
			Storage:   f.storage,
			Notifier:  f.notifier,
			JWT:       portal.JWTConfig{Secret: testJWTSecret, ExpMinutes: 30, Issuer: testIssuer},
			Log:       log,
		}),
		Provisioner: f.prov,
		DashboardUC: dashboard,
		ReportUC:    appanalytics.NewReportUseCase(dashboard, fakePDF{}, "Prisma Avaliações"),
		ArticleUC:   blog.NewArticleUseCase(apptest.ArticleRepo{S: st}, apptest.SEORepo{S: st}, site, log),
		Site:        apphttp.NewSiteHandler(config.SiteConfig{CompanyName: "Prisma Avaliações", Domain: "prismaavaliacoes.com.br"}, site),
		JWTSecret:   testJWTSecret,
	})
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func staffToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", pkgjwt.RoleStaff, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

// customerWithLogin crea el cliente, su acceso y devuelve el token del portal.
func (f *apiFixture) customerWithLogin(t *testing.T, id, digits string) string {
	t.Helper()
	f.store.Customers[id] = entity.Customer{ID: id, Name: "Cliente " + id, Phone: digits, PhoneDigits: digits}
	cred, err := f.prov.ProvisionLogin(context.Background(), id)
	require.NoError(t, err)

	resp := f.do(t, http.MethodPost, "/api/portal/login", "", dto.PortalLoginRequest{Phone: digits, Password: cred.Password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.PortalLoginResponse](t, resp).Token
}

func (f *apiFixture) addSale(id, customerID string, done int, paid bool, document string) {
	var flags pipeline.Flags
	for i := 0; i < done; i++ {
		flags[i] = true
	}
	f.store.Sales[id] = entity.Sale{
		ID: id, CustomerID: customerID, Stages: flags, Version: 1,
		SecondDepositConfirmed: paid, FinalDocument: document, CreatedAt: time.Now(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Portal
// ──────────────────────────────────────────────────────────────────────────────

func TestPortalLogin_TelefonoConMascara(t *testing.T) {
	f := newAPI(t)
	f.customerWithLogin(t, "c1", "61998311920")

	resp := f.do(t, http.MethodPost, "/api/portal/login", "", dto.PortalLoginRequest{Phone: "(61) 99831-1920", Password: "1920"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.PortalLoginResponse](t, resp)
	assert.Equal(t, "c1", out.Customer.ID)
}

func TestPortalLogin_CredencialesInvalidas_Retorna401(t *testing.T) {
	f := newAPI(t)
	f.customerWithLogin(t, "c1", "61998311920")

	resp := f.do(t, http.MethodPost, "/api/portal/login", "", dto.PortalLoginRequest{Phone: "61998311920", Password: "0000"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/portal/login", "", dto.PortalLoginRequest{Phone: "11911112222", Password: "2222"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPortalLogin_ClienteSinAcceso_Retorna403(t *testing.T) {
	f := newAPI(t)
	f.store.Customers["c1"] = entity.Customer{ID: "c1", Name: "Ana", Phone: "61998311920", PhoneDigits: "61998311920"}

	resp := f.do(t, http.MethodPost, "/api/portal/login", "", dto.PortalLoginRequest{Phone: "61998311920", Password: "1920"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPortal_TokenStaffNoAccede(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/portal/dashboard", staffToken(t), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPortal_DashboardYCompras(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")
	f.addSale("s1", "c1", pipeline.StageCount, true, "")
	f.addSale("s2", "c1", 5, false, "")
	f.addSale("s3", "otro", 2, false, "")

	resp := f.do(t, http.MethodGet, "/api/portal/dashboard", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[dto.PortalDashboardDTO](t, resp)
	assert.Equal(t, 2, dash.TotalSales)
	assert.Equal(t, 1, dash.Completed)
	assert.Equal(t, 1, dash.InProgress)

	resp = f.do(t, http.MethodGet, "/api/portal/sales", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.PortalSaleDTO](t, resp), 2)
}

func TestPortal_PagarSegundoSinal(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")
	f.addSale("s1", "c1", 5, false, "")

	resp := f.do(t, http.MethodPost, "/api/portal/sales/s1/pay-second-deposit", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.PortalSaleDTO](t, resp).SecondDepositPaid)

	resp = f.do(t, http.MethodPost, "/api/portal/sales/s1/pay-second-deposit", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NOT_ELIGIBLE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestPortal_DescargaLaudo(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")
	f.addSale("s1", "c1", 5, true, "vendas/documentos/s1.pdf")
	f.storage.Files["vendas/documentos/s1.pdf"] = []byte("%PDF laudo")

	resp := f.do(t, http.MethodGet, "/api/portal/sales/s1/document", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Laudo_Venda_s1.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF laudo", string(body))
}

func TestPortal_DescargaLaudoDeOtroCliente_Retorna403(t *testing.T) {
	f := newAPI(t)
	f.customerWithLogin(t, "a", "61998311920")
	tokB := f.customerWithLogin(t, "b", "11987654321")
	f.addSale("s1", "a", 5, true, "vendas/documentos/s1.pdf")
	f.storage.Files["vendas/documentos/s1.pdf"] = []byte("%PDF laudo")

	resp := f.do(t, http.MethodGet, "/api/portal/sales/s1/document", tokB, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED_ACCESS", decode[dto.ErrorResponse](t, resp).Code)
}

func TestPortal_LaudoFaltanteEnStorage_Retorna404(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")
	f.addSale("s1", "c1", 5, true, "vendas/documentos/s1.pdf")

	resp := f.do(t, http.MethodGet, "/api/portal/sales/s1/document", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "DOCUMENT_MISSING", decode[dto.ErrorResponse](t, resp).Code)
}

func TestPortal_CambioPasswordValidaConfirmacion(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")

	resp := f.do(t, http.MethodPut, "/api/portal/password", tok, dto.ChangePasswordRequest{
		CurrentPassword: "1920", NewPassword: "nueva-clave", ConfirmPassword: "otra-clave",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPut, "/api/portal/password", tok, dto.ChangePasswordRequest{
		CurrentPassword: "1920", NewPassword: "nueva-clave", ConfirmPassword: "nueva-clave",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/portal/login", "", dto.PortalLoginRequest{Phone: "61998311920", Password: "nueva-clave"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPortal_SoporteFallaSMTP_Retorna502(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")
	f.notifier.Err = errors.New("dial tcp: connection refused")

	resp := f.do(t, http.MethodPost, "/api/portal/support", tok, dto.SupportRequest{Subject: "Prazo", Message: "Quando fica pronto?"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOTIFICATION_FAILED", out.Code)
	assert.NotContains(t, out.Message, "connection refused")
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel
// ──────────────────────────────────────────────────────────────────────────────

func TestPanel_TokenClienteNoAccede(t *testing.T) {
	f := newAPI(t)
	tok := f.customerWithLogin(t, "c1", "61998311920")

	resp := f.do(t, http.MethodGet, "/api/sales", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStaffLogin(t *testing.T) {
	f := newAPI(t)
	uc := auth.NewAuthUseCase(apptest.UserRepo{S: f.store}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 30})
	_, err := uc.CreateStaff(context.Background(), dto.CreateStaffRequest{Username: "admin", Password: "clave-segura"})
	require.NoError(t, err)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "clave-segura"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)

	resp = f.do(t, http.MethodGet, "/api/customers", out.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomers_ListaLimiteInvalido_Retorna400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/customers?limit=500", staffToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSales_UpdateConVersionVieja_Retorna409(t *testing.T) {
	f := newAPI(t)
	f.store.Customers["c1"] = entity.Customer{ID: "c1", Name: "Ana"}
	f.addSale("s1", "c1", 1, false, "")
	tok := staffToken(t)

	resp := f.do(t, http.MethodPut, "/api/sales/s1", tok, dto.UpdateSaleRequest{Version: 1, Stages: dto.StageFlagsDTO{Quote: true, SaleClosed: true}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.SaleResponse](t, resp).Version)

	resp = f.do(t, http.MethodPut, "/api/sales/s1", tok, dto.UpdateSaleRequest{Version: 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSales_AdvanceYAdjuntarLaudo(t *testing.T) {
	f := newAPI(t)
	f.store.Customers["c1"] = entity.Customer{ID: "c1", Name: "Ana"}
	f.addSale("s1", "c1", 4, false, "")
	tok := staffToken(t)

	resp := f.do(t, http.MethodPost, "/api/sales/s1/advance", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adv := decode[dto.AdvanceSaleResponse](t, resp)
	assert.Equal(t, "production", adv.Stage)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("document", "laudo.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF contenido"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/sales/s1/document", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = f.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.SaleResponse](t, resp).HasDocument)
	assert.Equal(t, []byte("%PDF contenido"), f.storage.Files["vendas/documentos/s1.pdf"])
}

func TestDashboard_ReportePDF(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/dashboard/report.pdf?year=2025&month=3", staffToken(t), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "relatorio_vendas_2025_03.pdf")
}

func TestDashboard_MesInvalido_Retorna400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/dashboard/monthly?year=2025&month=13", staffToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Blog y sitio
// ──────────────────────────────────────────────────────────────────────────────

func TestBlog_BorradorNoEsVisibleHastaPublicar(t *testing.T) {
	f := newAPI(t)
	tok := staffToken(t)

	resp := f.do(t, http.MethodPost, "/api/articles", tok, dto.ArticleRequest{
		Title: "Como funciona um laudo", AuthorName: "Equipe", Summary: "Resumo", Body: "Conteúdo do artigo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	art := decode[dto.ArticleResponse](t, resp)
	assert.False(t, art.Published)

	resp = f.do(t, http.MethodGet, "/api/blog/"+art.Slug, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/articles/"+art.ID+"/publish", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/blog/"+art.Slug, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[dto.ArticleDetailResponse](t, resp)
	assert.Equal(t, art.ID, detail.Article.ID)

	resp = f.do(t, http.MethodGet, "/api/blog/search?q=la", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string][]dto.ArticleCardDTO](t, resp)
	assert.Empty(t, body["results"])
}

func TestArticles_RequiereStaff(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/articles", "", dto.ArticleRequest{Title: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSite_IncluyeSchemaDeOrganizacion(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/site", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.SiteResponse](t, resp)
	assert.Equal(t, "Prisma Avaliações", out.CompanyName)
	assert.True(t, strings.Contains(out.OrganizationSchema, "prismaavaliacoes.com.br"))
}
