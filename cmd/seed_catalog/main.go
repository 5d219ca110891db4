// seed_catalog carga el catálogo de productos y el usuario administrador en PostgreSQL.
// El motor de inventario solo lee productos y usuarios; este comando es la vía para poblarlos.
//
// Uso: go run ./cmd/seed_catalog [-admin-password clave] [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Columnas: codigo, nombre, especificacion, unidad, precio_compra, precio_venta, umbral.
// Acepta archivos UTF-8 o Windows-1252 (exportación de Excel).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func main() {
	adminPassword := flag.String("admin-password", "", "crea o actualiza el usuario admin con esta clave")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fail("abrir catálogo", err)
	}
	defer f.Close()

	products, err := parseCatalog(f)
	if err != nil {
		fail("leer catálogo", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fail("migraciones", err)
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(`
			INSERT INTO products (id, name, code, spec, unit, purchase_price, retail_price, alert_threshold)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (code) DO UPDATE SET
				name = EXCLUDED.name, spec = EXCLUDED.spec, unit = EXCLUDED.unit,
				purchase_price = EXCLUDED.purchase_price, retail_price = EXCLUDED.retail_price,
				alert_threshold = EXCLUDED.alert_threshold, updated_at = now()`,
			uuid.New().String(), p.Name, p.Code, p.Spec, p.Unit, p.PurchasePrice, p.RetailPrice, p.AlertThreshold)
	}
	if *adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			fail("hash de la clave", err)
		}
		batch.Queue(`
			INSERT INTO users (id, username, password_hash, name, role, status)
			VALUES ($1, 'admin', $2, 'Administrador', 'admin', 'active')
			ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = now()`,
			uuid.New().String(), string(hash))
	}
	if batch.Len() == 0 {
		fmt.Println("Nada que cargar")
		return
	}
	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		fail("cargar catálogo", err)
	}

	fmt.Printf("Cargados %d productos desde %s\n", len(products), csvPath)
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
	os.Exit(1)
}
