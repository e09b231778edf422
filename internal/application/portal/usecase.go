package portal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/ports"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/pipeline"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
	"github.com/jhoicas/prisma-api/pkg/jwt"
	"github.com/jhoicas/prisma-api/pkg/logger"
	"github.com/jhoicas/prisma-api/pkg/phone"
)

// MinPasswordLength largo mínimo de la contraseña elegida por el cliente.
const MinPasswordLength = 8

// dashboardRecent compras mostradas en el resumen del portal.
const dashboardRecent = 5

// UseCase acciones del cliente autenticado. Toda acción sobre una venta verifica primero
// que pertenezca al cliente del token (ErrUnauthorized) y recién después la elegibilidad (ErrNotEligible).
type UseCase struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	users     repository.UserRepository
	tx        TxRunner
	storage   ports.DocumentStorage
	notifier  ports.Notifier
	events    ports.EventRecorder
	jwtCfg    JWTConfig
	log       *logger.Logger
	hashCost  int
	now       func() time.Time
}

// Deps dependencias del portal.
type Deps struct {
	Customers repository.CustomerRepository
	Sales     repository.SaleRepository
	Users     repository.UserRepository
	Tx        TxRunner
	Storage   ports.DocumentStorage
	Notifier  ports.Notifier
	Events    ports.EventRecorder
	JWT       JWTConfig
	Log       *logger.Logger
}

// NewUseCase construye los casos de uso del portal.
func NewUseCase(d Deps) *UseCase {
	if d.Events == nil {
		d.Events = ports.NopRecorder{}
	}
	return &UseCase{
		customers: d.Customers,
		sales:     d.Sales,
		users:     d.Users,
		tx:        d.Tx,
		storage:   d.Storage,
		notifier:  d.Notifier,
		events:    d.Events,
		jwtCfg:    d.JWT,
		log:       d.Log,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// Login autentica por teléfono (se normaliza igual que al crear el acceso) y contraseña.
// Cliente inexistente o contraseña incorrecta → ErrUnauthorized; cliente sin acceso → ErrForbidden.
func (uc *UseCase) Login(ctx context.Context, in dto.PortalLoginRequest) (*dto.PortalLoginResponse, error) {
	digits := phone.Normalize(in.Phone)
	if digits == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := uc.customers.GetByPhoneDigits(ctx, digits)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrUnauthorized
	}
	if !c.HasLogin() {
		return nil, fmt.Errorf("%w: acceso no configurado, contacte al soporte", domain.ErrForbidden)
	}
	user, err := uc.users.GetByID(ctx, *c.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleCustomer {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, c.ID, jwt.RoleCustomer, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.PortalLoginResponse{Token: token, Customer: toCustomerSummary(c)}, nil
}

func (uc *UseCase) customer(ctx context.Context, customerID string) (*entity.Customer, error) {
	c, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrUnauthorized
	}
	return c, nil
}

// Dashboard totales del cliente: concluidas = envio realizado; el resto en andamento.
func (uc *UseCase) Dashboard(ctx context.Context, customerID string) (*dto.PortalDashboardDTO, error) {
	c, err := uc.customer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.PortalDashboardDTO{
		Customer:    toCustomerSummary(c),
		TotalSales:  len(list),
		RecentSales: make([]dto.PortalSaleDTO, 0, min(len(list), dashboardRecent)),
	}
	for i, s := range list {
		if s.Stages.Done(pipeline.StageShipped) {
			out.Completed++
		} else {
			out.InProgress++
		}
		if i < dashboardRecent {
			out.RecentSales = append(out.RecentSales, toPortalSale(s))
		}
	}
	return out, nil
}

// MyPurchases todas las compras del cliente, más recientes primero.
func (uc *UseCase) MyPurchases(ctx context.Context, customerID string) ([]dto.PortalSaleDTO, error) {
	c, err := uc.customer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	list, err := uc.sales.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PortalSaleDTO, 0, len(list))
	for _, s := range list {
		out = append(out, toPortalSale(s))
	}
	return out, nil
}

func owned(s *entity.Sale, customerID string) error {
	if s == nil {
		return domain.ErrNotFound
	}
	if s.CustomerID != customerID {
		return domain.ErrUnauthorized
	}
	return nil
}

// PaySecondDeposit confirma el pago simulado del 2º sinal (sin gateway).
// Solo marca la confirmación de pago; la etapa "2º Sinal" sigue a cargo del personal.
func (uc *UseCase) PaySecondDeposit(ctx context.Context, customerID, saleID string) (*dto.PortalSaleDTO, error) {
	var paid *entity.Sale
	err := uc.tx.Run(ctx, func(_ repository.UserRepository, _ repository.CustomerRepository, sales repository.SaleRepository) error {
		s, err := sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if err := owned(s, customerID); err != nil {
			return err
		}
		if !s.CanPaySecondDeposit() {
			return domain.ErrNotEligible
		}
		s.SecondDepositConfirmed = true
		s.UpdatedAt = uc.now()
		if err := sales.Update(ctx, s); err != nil {
			return err
		}
		paid = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.events.SecondDepositPaid()
	uc.log.Info().Str("sale_id", saleID).Str("customer_id", customerID).Msg("2º sinal confirmado por el cliente")
	out := toPortalSale(paid)
	return &out, nil
}

// DownloadFinalDocument abre el laudo de la venta. El llamador cierra el reader.
func (uc *UseCase) DownloadFinalDocument(ctx context.Context, customerID, saleID string) (io.ReadCloser, string, error) {
	s, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", err
	}
	if err := owned(s, customerID); err != nil {
		return nil, "", err
	}
	if !s.CanDownloadDocument() {
		return nil, "", domain.ErrNotEligible
	}
	exists, err := uc.storage.Exists(ctx, s.FinalDocument)
	if err != nil {
		return nil, "", fmt.Errorf("verificar laudo: %w", err)
	}
	if !exists {
		uc.log.Error().Str("sale_id", s.ID).Str("path", s.FinalDocument).Msg("laudo referenciado no existe en el storage")
		return nil, "", domain.ErrDocumentMissing
	}
	rc, err := uc.storage.Open(ctx, s.FinalDocument)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrDocumentMissing, err)
	}
	uc.events.DocumentDownloaded()
	return rc, s.DocumentFilename(), nil
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (uc *UseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if utf8.RuneCountInString(in.NewPassword) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	if in.NewPassword != in.ConfirmPassword {
		return fmt.Errorf("%w: la confirmación no coincide", domain.ErrInvalidInput)
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), uc.hashCost)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, string(hash), uc.now())
}

// ContactSupport envía el mensaje del cliente al correo de soporte. No reintenta:
// cualquier falla del servidor de correo se informa como ErrNotificationFailed.
func (uc *UseCase) ContactSupport(ctx context.Context, customerID string, in dto.SupportRequest) error {
	subject := strings.TrimSpace(in.Subject)
	message := strings.TrimSpace(in.Message)
	if subject == "" || message == "" {
		return fmt.Errorf("%w: asunto y mensaje son obligatorios", domain.ErrInvalidInput)
	}
	c, err := uc.customer(ctx, customerID)
	if err != nil {
		return err
	}
	email := c.Email
	if email == "" {
		email = "Não informado"
	}
	body := fmt.Sprintf(
		"Solicitação de Suporte - Área do Cliente\n\nCliente: %s\nTelefone: %s\nEmail: %s\n\nAssunto: %s\n\nMensagem:\n%s\n\n---\nEnviado através da Área do Cliente\n",
		c.Name, c.Phone, email, subject, message,
	)
	if err := uc.notifier.SendSupportMessage(ctx, "Suporte - "+subject, body, c.Email); err != nil {
		uc.events.SupportMessage(false)
		uc.log.Error().Err(err).Str("customer_id", c.ID).Msg("falló el envío del mensaje de soporte")
		return domain.ErrNotificationFailed
	}
	uc.events.SupportMessage(true)
	return nil
}

func toCustomerSummary(c *entity.Customer) dto.PortalCustomerSummary {
	return dto.PortalCustomerSummary{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}

func toPortalSale(s *entity.Sale) dto.PortalSaleDTO {
	stages := make([]dto.PortalStageDTO, 0, pipeline.StageCount)
	for _, st := range pipeline.Stages() {
		stages = append(stages, dto.PortalStageDTO{Code: st.Name(), Label: st.Label(), Done: s.Stages.Done(st)})
	}
	var value *decimal.Decimal
	if s.Value.Valid {
		v := s.Value.Decimal
		value = &v
	}
	status := s.Status()
	return dto.PortalSaleDTO{
		ID:                  s.ID,
		Stages:              stages,
		Value:               value,
		Status:              string(status),
		StatusLabel:         status.Label(),
		CompletionPercent:   s.CompletionPercent(),
		NextStage:           pipeline.NextIncompleteStageName(s.Stages),
		NextStageLabel:      pipeline.NextIncompleteStageLabel(s.Stages),
		SecondDepositPaid:   s.SecondDepositConfirmed,
		CanPaySecondDeposit: s.CanPaySecondDeposit(),
		CanDownloadDocument: s.CanDownloadDocument(),
		CreatedAt:           s.CreatedAt,
	}
}
