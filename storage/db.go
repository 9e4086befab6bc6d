package storage

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

// DB representa a conexão com o banco de dados PostgreSQL.
type DB struct {
	*sqlx.DB
}

// NewDB conecta-se ao PostgreSQL e executa as migrações.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("falha ao pingar o banco de dados: %w", err)
	}
	log.Println("Conexão com PostgreSQL estabelecida com sucesso.")

	if err := runMigrations(db.DB); err != nil {
		return nil, fmt.Errorf("falha ao executar migrações: %w", err)
	}

	return &DB{db}, nil
}

// runMigrations executa as migrações usando sql-migrate.
func runMigrations(db *sql.DB) error {
	migrations := &migrate.FileMigrationSource{
		Dir: "./storage/migrations",
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	if n > 0 {
		log.Printf("Aplicadas %d migrações ao banco de dados.", n)
	} else {
		log.Println("Nenhuma migração nova para aplicar.")
	}
	return nil
}
