// manage tareas administrativas sobre la base de datos.
//
// Uso:
//
//	go run ./cmd/manage migrate
//	go run ./cmd/manage import-customers clientes.csv
//	go run ./cmd/manage provision-logins
//	go run ./cmd/manage create-staff <username> <password>
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/prisma-api/internal/application/auth"
	"github.com/jhoicas/prisma-api/internal/application/dto"
	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/application/sales"
	"github.com/jhoicas/prisma-api/internal/infrastructure/postgres"
	"github.com/jhoicas/prisma-api/pkg/config"
	"github.com/jhoicas/prisma-api/pkg/logger"
)

const usage = `uso: manage <comando> [args]

comandos:
  migrate                              aplica el esquema
  import-customers <archivo.csv>       importa clientes (nome;telefone;email;cidade;estado)
  provision-logins                     crea accesos al portal para clientes sin login
  create-staff <username> <password>   crea un usuario del panel
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	args := os.Args[2:]
	switch os.Args[1] {
	case "migrate":
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			fail("%v", err)
		}
		fmt.Println("esquema aplicado")

	case "import-customers":
		if len(args) != 1 {
			fail("import-customers requiere la ruta del CSV")
		}
		f, err := os.Open(args[0])
		if err != nil {
			fail("abrir CSV: %v", err)
		}
		defer f.Close()
		uc := sales.NewCustomerUseCase(postgres.NewCustomerRepository(pool))
		res, err := uc.ImportCustomers(ctx, f)
		if res != nil {
			fmt.Printf("creados: %d, duplicados: %d, rechazados: %d\n", res.Created, res.Duplicates, len(res.Failed))
			for _, fl := range res.Failed {
				fmt.Printf("  línea %d: %s\n", fl.Line, fl.Reason)
			}
		}
		if err != nil {
			fail("%v", err)
		}

	case "provision-logins":
		p := portal.NewCredentialProvisioner(postgres.NewCustomerRepository(pool), postgres.NewTxRunner(pool), log)
		res, err := p.ProvisionMissing(ctx)
		if err != nil {
			fail("%v", err)
		}
		for _, c := range res.Created {
			fmt.Printf("%s\t%s\t%s\n", c.CustomerName, c.Username, c.Password)
		}
		for _, fl := range res.Failed {
			fmt.Fprintf(os.Stderr, "cliente %s: %s\n", fl.CustomerID, fl.Reason)
		}
		fmt.Printf("accesos creados: %d, fallidos: %d\n", len(res.Created), len(res.Failed))

	case "create-staff":
		if len(args) != 2 {
			fail("create-staff requiere <username> <password>")
		}
		uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		u, err := uc.CreateStaff(ctx, dto.CreateStaffRequest{Username: args[0], Password: args[1]})
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("usuario %s creado (%s)\n", u.Username, u.ID)

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
