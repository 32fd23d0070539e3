package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/buildlink/marketplace-api/internal/domain/entity"
	"github.com/buildlink/marketplace-api/internal/infrastructure/postgres"
	"github.com/buildlink/marketplace-api/pkg/config"
	"github.com/buildlink/marketplace-api/pkg/logger"
)

// buildlinkctl herramienta de administración: altas de personal interno y
// siembra del catálogo de demostración. Usa la misma configuración que la API
// (DATABASE_URL / DB_*).

var rootCmd = &cobra.Command{
	Use:   "buildlinkctl",
	Short: "Administración de BuildLink: empleados y catálogo",
}

var createEmployeeCmd = &cobra.Command{
	Use:   "create-employee <emp-id> <nombre>",
	Short: "Crea un empleado interno con contraseña bcrypt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			return fmt.Errorf("--password es obligatorio")
		}

		db, err := openHandle()
		if err != nil {
			return err
		}
		defer db.Close()

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash de contraseña: %w", err)
		}

		repo := postgres.NewEmployeeRepository(db)
		if err := repo.Create(&entity.Employee{
			EmpID:        args[0],
			PasswordHash: string(hash),
			Name:         args[1],
			CreatedAt:    time.Now(),
		}); err != nil {
			return fmt.Errorf("crear empleado: %w", err)
		}

		fmt.Printf("empleado %s creado\n", args[0])
		return nil
	},
}

var seedCatalogCmd = &cobra.Command{
	Use:   "seed-catalog",
	Short: "Siembra proveedores, materiales y ofertas de demostración",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHandle()
		if err != nil {
			return err
		}
		defer db.Close()

		repo := postgres.NewSupplierRepository(db)

		suppliers := []*entity.Supplier{
			{ID: uuid.NewString(), Name: "建材行 Fortaleza", Email: "ventas@fortaleza.example", PhoneNumber: "0912-345-678", Address: "台北市中山區", CreatedAt: time.Now()},
			{ID: uuid.NewString(), Name: "Aceros del Norte", Email: "contacto@acerosnorte.example", PhoneNumber: "0922-111-222", Address: "新北市板橋區", CreatedAt: time.Now()},
			{ID: uuid.NewString(), Name: "Cementos Unidos", Email: "pedidos@cementosunidos.example", PhoneNumber: "0933-444-555", Address: "桃園市中壢區", CreatedAt: time.Now()},
		}
		materials := []*entity.Material{
			{ID: uuid.NewString(), Name: "水泥 Portland", Category: "Cemento", Unit: "saco"},
			{ID: uuid.NewString(), Name: "鋼筋 #4", Category: "Acero", Unit: "varilla"},
			{ID: uuid.NewString(), Name: "紅磚", Category: "Mampostería", Unit: "unidad"},
		}

		for _, s := range suppliers {
			if err := repo.CreateSupplier(s); err != nil {
				return fmt.Errorf("crear proveedor %s: %w", s.Name, err)
			}
		}
		for _, m := range materials {
			if err := repo.CreateMaterial(m); err != nil {
				return fmt.Errorf("crear material %s: %w", m.Name, err)
			}
		}

		// Cada proveedor ofrece cada material con precios escalonados.
		base := decimal.NewFromInt(120)
		for i, s := range suppliers {
			for j, m := range materials {
				offer := &entity.SupplierMaterial{
					SupplierID:     s.ID,
					MaterialID:     m.ID,
					PricePerUnit:   base.Add(decimal.NewFromInt(int64(i*15 + j*40))),
					AvailableStock: decimal.NewFromInt(int64(500 - i*100)),
				}
				if err := repo.CreateOffer(offer); err != nil {
					return fmt.Errorf("crear oferta %s/%s: %w", s.Name, m.Name, err)
				}
			}
		}

		fmt.Printf("catálogo sembrado: %d proveedores, %d materiales\n", len(suppliers), len(materials))
		return nil
	},
}

// openHandle abre el handle de almacenamiento y exige conexión viva: a
// diferencia de la API, la CLI no tiene sentido sin base de datos.
func openHandle() (*postgres.Handle, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	db := postgres.NewHandle(context.Background(), cfg.DB, log)
	if _, err := db.Pool(); err != nil {
		db.Close()
		return nil, fmt.Errorf("base de datos no disponible: %w", err)
	}
	return db, nil
}

func init() {
	createEmployeeCmd.Flags().String("password", "", "Contraseña inicial del empleado")
	rootCmd.AddCommand(createEmployeeCmd, seedCatalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
