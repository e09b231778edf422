package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/domain"
	"github.com/jhoicas/prisma-api/internal/domain/entity"
	"github.com/jhoicas/prisma-api/internal/domain/repository"
	"github.com/jhoicas/prisma-api/pkg/phone"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

func (uc *CustomerUseCase) fill(c *entity.Customer, in dto.CreateCustomerRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: nombre obligatorio", domain.ErrInvalidInput)
	}
	if err := phone.Validate(in.Phone); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	state := strings.ToUpper(strings.TrimSpace(in.State))
	if state != "" && len(state) != 2 {
		return fmt.Errorf("%w: estado debe ser la sigla UF", domain.ErrInvalidInput)
	}
	c.Name = name
	c.Phone = strings.TrimSpace(in.Phone)
	c.PhoneDigits = phone.Normalize(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.City = strings.TrimSpace(in.City)
	c.State = state
	return nil
}

// Create registra un cliente. Teléfono ya registrado → ErrDuplicate.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := uc.now()
	c := &entity.Customer{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.fill(c, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByPhoneDigits(ctx, c.PhoneDigits)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// Update actualiza los datos del cliente. Cambiar el teléfono no cambia el username del portal.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.fill(c, in); err != nil {
		return nil, err
	}
	other, err := uc.repo.GetByPhoneDigits(ctx, c.PhoneDigits)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != c.ID {
		return nil, domain.ErrDuplicate
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := ToCustomerResponse(c)
	return &out, nil
}

// List lista clientes con filtros y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, in dto.CustomerListRequest) (*dto.CustomerListResponse, error) {
	in.DefaultPage()
	filter := repository.CustomerFilter{Search: in.Search, City: in.City, State: in.State}
	list, err := uc.repo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, ToCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}
