package portal_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/prisma-api/internal/application/apptest"
	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/pkg/jwt"
	"github.com/jhoicas/prisma-api/pkg/logger"
)

const testSecret = "secreto-de-prueba"

type fixture struct {
	store       *apptest.Store
	storage     *apptest.Storage
	notifier    *apptest.Notifier
	events      *apptest.Recorder
	provisioner *portal.CredentialProvisioner
	uc          *portal.UseCase
}

func newFixture() *fixture {
	st := apptest.NewStore()
	f := &fixture{
		store:    st,
		storage:  apptest.NewStorage(),
		notifier: &apptest.Notifier{},
		events:   &apptest.Recorder{},
	}
	f.provisioner = portal.NewCredentialProvisioner(apptest.CustomerRepo{S: st}, apptest.TxRunner{S: st}, logger.Nop())
	f.uc = portal.NewUseCase(portal.Deps{
		Customers: apptest.CustomerRepo{S: st},
		Sales:     apptest.SaleRepo{S: st},
		Users:     apptest.UserRepo{S: st},
		Tx:        apptest.TxRunner{S: st},
		Storage:   f.storage,
		Notifier:  f.notifier,
		Events:    f.events,
		JWT:       portal.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "test"},
		Log:       logger.Nop(),
	})
	return f
}

func (f *fixture) addCustomer(id, name, phone, digits string) {
	f.store.Customers[id] = entity.Customer{ID: id, Name: name, Phone: phone, PhoneDigits: digits, Email: id + "@mail.com"}
}

func (f *fixture) addSale(id, customerID string, done int, createdAt time.Time) {
	var flags pipeline.Flags
	for i := 0; i < done; i++ {
		flags[i] = true
	}
	f.store.Sales[id] = entity.Sale{ID: id, CustomerID: customerID, Stages: flags, Version: 1, CreatedAt: createdAt}
}

// withLogin crea cliente con acceso al portal y devuelve la contraseña por defecto.
func (f *fixture) withLogin(t *testing.T, id, phone, digits string) string {
	t.Helper()
	f.addCustomer(id, "Cliente "+id, phone, digits)
	cred, err := f.provisioner.ProvisionLogin(context.Background(), id)
	require.NoError(t, err)
	return cred.Password
}

// ──────────────────────────────────────────────────────────────────────────────
// Provisión de credenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestProvisionLogin_UsernameEsTelefonoYPasswordUltimos4(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "(61) 99831-1920", "61998311920")

	cred, err := f.provisioner.ProvisionLogin(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "61998311920", cred.Username)
	assert.Equal(t, "1920", cred.Password)
	c := f.store.Customers["c1"]
	require.NotNil(t, c.UserID)
	u := f.store.Users[*c.UserID]
	assert.Equal(t, entity.RoleCustomer, u.Role)
	assert.NotEqual(t, "1920", u.PasswordHash)
}

func TestProvisionLogin_ColisionAgregaSufijo(t *testing.T) {
	f := newFixture()
	f.store.Users["staff"] = entity.User{ID: "staff", Username: "61998311920", Role: entity.RoleStaff}
	f.store.Users["otro"] = entity.User{ID: "otro", Username: "61998311920_1", Role: entity.RoleCustomer}
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")

	cred, err := f.provisioner.ProvisionLogin(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "61998311920_2", cred.Username)
}

func TestProvisionLogin_TelefonoCorto(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "123", "123")

	_, err := f.provisioner.ProvisionLogin(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, f.store.Customers["c1"].UserID)
}

func TestProvisionLogin_YaTieneAcceso(t *testing.T) {
	f := newFixture()
	f.withLogin(t, "c1", "61998311920", "61998311920")

	_, err := f.provisioner.ProvisionLogin(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProvisionMissing_ContinuaTrasFallas(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.addCustomer("c2", "Bruno", "12", "12")
	f.addCustomer("c3", "Carla", "61912345678", "61912345678")

	res, err := f.provisioner.ProvisionMissing(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "c2", res.Failed[0].CustomerID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TelefonoConMascara(t *testing.T) {
	f := newFixture()
	pass := f.withLogin(t, "c1", "61998311920", "61998311920")

	res, err := f.uc.Login(context.Background(), dto.PortalLoginRequest{Phone: "(61) 99831-1920", Password: pass})
	require.NoError(t, err)
	assert.Equal(t, "c1", res.Customer.ID)

	_, customerID, role, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "c1", customerID)
	assert.Equal(t, jwt.RoleCustomer, role)
}

func TestLogin_Rechazos(t *testing.T) {
	f := newFixture()
	f.withLogin(t, "c1", "61998311920", "61998311920")
	f.addCustomer("c2", "Sin acceso", "61912345678", "61912345678")

	_, err := f.uc.Login(context.Background(), dto.PortalLoginRequest{Phone: "61998311920", Password: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Login(context.Background(), dto.PortalLoginRequest{Phone: "61900000000", Password: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Login(context.Background(), dto.PortalLoginRequest{Phone: "61912345678", Password: "5678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	f := newFixture()
	pass := f.withLogin(t, "c1", "61998311920", "61998311920")
	u := f.store.Users[*f.store.Customers["c1"].UserID]
	u.Status = entity.UserStatusInactive
	f.store.Users[u.ID] = u

	_, err := f.uc.Login(context.Background(), dto.PortalLoginRequest{Phone: "61998311920", Password: pass})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y compras
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_CuentaConcluidasPorEnvio(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.addCustomer("c2", "Bruno", "61912345678", "61912345678")
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f.addSale("s1", "c1", 7, base)
	f.addSale("s2", "c1", 4, base.Add(time.Hour))
	f.addSale("s3", "c1", 0, base.Add(2*time.Hour))
	f.addSale("s4", "c2", 7, base)

	d, err := f.uc.Dashboard(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 3, d.TotalSales)
	assert.Equal(t, 1, d.Completed)
	assert.Equal(t, 2, d.InProgress)
	require.Len(t, d.RecentSales, 3)
	assert.Equal(t, "s3", d.RecentSales[0].ID)
}

func TestMyPurchases_SoloDelCliente(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.addCustomer("c2", "Bruno", "61912345678", "61912345678")
	now := time.Now()
	f.addSale("s1", "c1", 5, now)
	f.addSale("s2", "c2", 1, now)

	list, err := f.uc.MyPurchases(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	s := list[0]
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "in_progress", s.Status)
	assert.Equal(t, "second_deposit", s.NextStage)
	assert.Equal(t, "2º Sinal", s.NextStageLabel)
	assert.Equal(t, "71.4", s.CompletionPercent.String())
	assert.True(t, s.CanPaySecondDeposit)
	assert.False(t, s.CanDownloadDocument)
	require.Len(t, s.Stages, pipeline.StageCount)
	assert.Equal(t, "quote", s.Stages[0].Code)
}

func TestMyPurchases_ClienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.MyPurchases(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// 2º sinal
// ──────────────────────────────────────────────────────────────────────────────

func TestPaySecondDeposit_Exitoso(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.addSale("s1", "c1", 5, time.Now())

	out, err := f.uc.PaySecondDeposit(context.Background(), "c1", "s1")
	require.NoError(t, err)
	assert.True(t, out.SecondDepositPaid)
	assert.False(t, out.CanPaySecondDeposit)
	assert.True(t, f.store.Sales["s1"].SecondDepositConfirmed)
	assert.Equal(t, 2, f.store.Sales["s1"].Version)
	assert.Equal(t, 1, f.events.Payments)

	_, err = f.uc.PaySecondDeposit(context.Background(), "c1", "s1")
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}

func TestPaySecondDeposit_VentaAjena(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.addCustomer("c2", "Bruno", "61912345678", "61912345678")
	f.addSale("s1", "c1", 5, time.Now())

	_, err := f.uc.PaySecondDeposit(context.Background(), "c2", "s1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, f.store.Sales["s1"].SecondDepositConfirmed)
}

func TestPaySecondDeposit_NoElegible(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.addSale("s1", "c1", 4, time.Now())

	_, err := f.uc.PaySecondDeposit(context.Background(), "c1", "s1")
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	_, err = f.uc.PaySecondDeposit(context.Background(), "c1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Laudo final
// ──────────────────────────────────────────────────────────────────────────────

func (f *fixture) readySale(id, customerID string) {
	f.addSale(id, customerID, 6, time.Now())
	s := f.store.Sales[id]
	s.SecondDepositConfirmed = true
	s.FinalDocument = "vendas/documentos/" + id + ".pdf"
	f.store.Sales[id] = s
}

func TestDownloadFinalDocument_Exitoso(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.readySale("s1", "c1")
	f.storage.Files["vendas/documentos/s1.pdf"] = []byte("%PDF-1.4")

	rc, name, err := f.uc.DownloadFinalDocument(context.Background(), "c1", "s1")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, "Laudo_Venda_s1.pdf", name)
	assert.Equal(t, 1, f.events.Downloads)
}

func TestDownloadFinalDocument_ClienteBNoDescargaDeA(t *testing.T) {
	f := newFixture()
	f.addCustomer("a", "Ana", "61998311920", "61998311920")
	f.addCustomer("b", "Bruno", "61912345678", "61912345678")
	f.readySale("s1", "a")
	f.storage.Files["vendas/documentos/s1.pdf"] = []byte("%PDF-1.4")

	_, _, err := f.uc.DownloadFinalDocument(context.Background(), "b", "s1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, f.events.Downloads)
}

func TestDownloadFinalDocument_SinPagoOArchivo(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.readySale("s1", "c1")
	s := f.store.Sales["s1"]
	s.SecondDepositConfirmed = false
	f.store.Sales["s1"] = s

	_, _, err := f.uc.DownloadFinalDocument(context.Background(), "c1", "s1")
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	f.readySale("s2", "c1")
	_, _, err = f.uc.DownloadFinalDocument(context.Background(), "c1", "s2")
	assert.ErrorIs(t, err, domain.ErrDocumentMissing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Contraseña y soporte
// ──────────────────────────────────────────────────────────────────────────────

func TestChangePassword_Flujo(t *testing.T) {
	f := newFixture()
	pass := f.withLogin(t, "c1", "61998311920", "61998311920")
	userID := *f.store.Customers["c1"].UserID
	ctx := context.Background()

	err := f.uc.ChangePassword(ctx, userID, dto.ChangePasswordRequest{CurrentPassword: "0000", NewPassword: "nuevaclave", ConfirmPassword: "nuevaclave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.uc.ChangePassword(ctx, userID, dto.ChangePasswordRequest{CurrentPassword: pass, NewPassword: "corta", ConfirmPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.uc.ChangePassword(ctx, userID, dto.ChangePasswordRequest{CurrentPassword: pass, NewPassword: "nuevaclave", ConfirmPassword: "otraclave"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, f.uc.ChangePassword(ctx, userID, dto.ChangePasswordRequest{CurrentPassword: pass, NewPassword: "nuevaclave", ConfirmPassword: "nuevaclave"}))

	_, err = f.uc.Login(ctx, dto.PortalLoginRequest{Phone: "61998311920", Password: pass})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.Login(ctx, dto.PortalLoginRequest{Phone: "61998311920", Password: "nuevaclave"})
	assert.NoError(t, err)
}

func TestContactSupport_Envia(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "(61) 99831-1920", "61998311920")

	err := f.uc.ContactSupport(context.Background(), "c1", dto.SupportRequest{Subject: "Prazo", Message: "Quando fica pronto?"})
	require.NoError(t, err)
	require.Len(t, f.notifier.Messages, 1)
	msg := f.notifier.Messages[0]
	assert.Contains(t, msg, "Suporte - Prazo")
	assert.Contains(t, msg, "Cliente: Ana")
	assert.Contains(t, msg, "Telefone: (61) 99831-1920")
	assert.Contains(t, msg, "Quando fica pronto?")
}

func TestContactSupport_FallaSMTP(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")
	f.notifier.Err = errors.New("dial tcp: connection refused")

	err := f.uc.ContactSupport(context.Background(), "c1", dto.SupportRequest{Subject: "Prazo", Message: "Oi"})
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestContactSupport_CamposVacios(t *testing.T) {
	f := newFixture()
	f.addCustomer("c1", "Ana", "61998311920", "61998311920")

	err := f.uc.ContactSupport(context.Background(), "c1", dto.SupportRequest{Subject: "  ", Message: "Oi"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.notifier.Messages)
}
