package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
	"github.com/jhoicas/prisma-api/pkg/logger"
	"github.com/jhoicas/prisma-api/pkg/phone"
)

// maxUsernameAttempts tope de sufijos "_n" probados antes de rendirse.
const maxUsernameAttempts = 1000

// CredentialProvisioner crea las credenciales del portal a partir del teléfono del cliente:
// username = dígitos del teléfono (con sufijo _1, _2... si ya existe) y contraseña = últimos 4 dígitos.
type CredentialProvisioner struct {
	customers repository.CustomerRepository
	tx        TxRunner
	log       *logger.Logger
	hashCost  int
	now       func() time.Time
}

// NewCredentialProvisioner construye el provisionador.
func NewCredentialProvisioner(customers repository.CustomerRepository, tx TxRunner, log *logger.Logger) *CredentialProvisioner {
	return &CredentialProvisioner{customers: customers, tx: tx, log: log, hashCost: bcrypt.DefaultCost, now: time.Now}
}

// ProvisionLogin crea la credencial de un cliente. Ya tener login → ErrConflict;
// teléfono con menos de 4 dígitos → ErrInvalidInput.
func (p *CredentialProvisioner) ProvisionLogin(ctx context.Context, customerID string) (*dto.CredentialsResponse, error) {
	c, err := p.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return p.provision(ctx, c)
}

// ProvisionMissing crea credenciales para todos los clientes sin login.
// Las fallas individuales se registran y no interrumpen el lote.
func (p *CredentialProvisioner) ProvisionMissing(ctx context.Context) (*dto.ProvisionResultResponse, error) {
	list, err := p.customers.ListWithoutLogin(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ProvisionResultResponse{Created: make([]dto.CredentialsResponse, 0, len(list))}
	for _, c := range list {
		cred, err := p.provision(ctx, c)
		if err != nil {
			p.log.Warn().Err(err).Str("customer_id", c.ID).Msg("no se pudo crear el acceso al portal")
			out.Failed = append(out.Failed, dto.ProvisionFailure{CustomerID: c.ID, Reason: err.Error()})
			continue
		}
		out.Created = append(out.Created, *cred)
	}
	p.log.Info().Int("created", len(out.Created)).Int("failed", len(out.Failed)).Msg("accesos al portal creados")
	return out, nil
}

func (p *CredentialProvisioner) provision(ctx context.Context, c *entity.Customer) (*dto.CredentialsResponse, error) {
	if c.HasLogin() {
		return nil, fmt.Errorf("%w: el cliente ya tiene acceso", domain.ErrConflict)
	}
	password, err := phone.DefaultPassword(c.PhoneDigits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.hashCost)
	if err != nil {
		return nil, err
	}

	var username string
	err = p.tx.Run(ctx, func(users repository.UserRepository, customers repository.CustomerRepository, _ repository.SaleRepository) error {
		name, err := freeUsername(ctx, users, c.PhoneDigits)
		if err != nil {
			return err
		}
		username = name
		now := p.now()
		user := &entity.User{
			ID:           uuid.New().String(),
			Username:     username,
			PasswordHash: string(hash),
			Name:         c.Name,
			Email:        c.Email,
			Role:         entity.RoleCustomer,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return customers.SetUserID(ctx, c.ID, user.ID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CredentialsResponse{
		CustomerID:   c.ID,
		CustomerName: c.Name,
		Username:     username,
		Password:     password,
	}, nil
}

func freeUsername(ctx context.Context, users repository.UserRepository, digits string) (string, error) {
	for n := 0; n < maxUsernameAttempts; n++ {
		candidate := phone.Username(digits, n)
		exists, err := users.ExistsUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.New("sin username disponible para " + digits)
}
