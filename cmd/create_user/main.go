// create_user crea un usuario (password con bcrypt) directamente en la base de datos.
//
// Uso: go run ./cmd/create_user -nombre ana -password secreta123 [-rol cliente] [-correo ana@x.com]
// Sin -correo se usa <nombre>@local.test. Lee la conexión de las mismas variables que la API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/auth"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/postgres"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/config"
)

func main() {
	var nombre, password, rol, correo string
	flag.StringVar(&nombre, "nombre", "", "nombre de usuario (requerido)")
	flag.StringVar(&password, "password", "", "contraseña (mínimo 8 caracteres)")
	flag.StringVar(&rol, "rol", "cliente", "rol: cliente, contador (contabilidad) o admin")
	flag.StringVar(&correo, "correo", "", "correo; por defecto <nombre>@local.test")
	flag.Parse()

	nombre = strings.TrimSpace(nombre)
	if nombre == "" || password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if correo == "" {
		correo = nombre + "@local.test"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: nombre,
		Email:    correo,
		Password: password,
		Role:     rol,
	})
	switch {
	case errors.Is(err, domain.ErrConflict):
		fmt.Printf("Usuario '%s' o correo '%s' ya existe.\n", nombre, correo)
		return
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintf(os.Stderr, "Datos inválidos: rol cliente/contador/admin, correo válido y password de al menos %d caracteres.\n", auth.MinPasswordLength)
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Usuario creado: %s (rol=%s), correo=%s\n", user.Username, user.Role, user.Email)
}
